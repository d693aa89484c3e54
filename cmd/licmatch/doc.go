// Command licmatch identifies software licenses in text files.
//
// It compares files against a catalog of reference licenses built from SPDX
// license-list-data, reports the best match for each file, and can locate
// licenses embedded in larger files such as READMEs or source headers.
//
//	licmatch store build --spdx-dir ~/src/license-list-data
//	licmatch identify LICENSE vendor/foo/README.md
//	licmatch crop main.go
//	licmatch compare LICENSE other/LICENSE --diff
package main
