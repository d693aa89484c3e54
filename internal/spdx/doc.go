// Package spdx loads reference licenses from a checkout of the SPDX
// license-list-data repository into a license store.
//
// Only the per-license detail documents under json/details are read. Each
// document contributes its license text as the original entry and, when
// present, its standard header as a header variant.
package spdx
