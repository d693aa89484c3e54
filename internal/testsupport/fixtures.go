package testsupport

import (
	"encoding/json"
	"path/filepath"
	"testing"
)

// Fixture is a reference license used across package tests.
type Fixture struct {
	ID         string
	Name       string
	Text       string
	Header     string
	Deprecated bool
}

// MITText is the MIT license body.
const MITText = `MIT License

Copyright (c) <year> <copyright holders>

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in all
copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
SOFTWARE.
`

// ISCText is the ISC license body.
const ISCText = `ISC License

Copyright (c) <year> <copyright holders>

Permission to use, copy, modify, and/or distribute this software for any
purpose with or without fee is hereby granted, provided that the above
copyright notice and this permission notice appear in all copies.

THE SOFTWARE IS PROVIDED "AS IS" AND THE AUTHOR DISCLAIMS ALL WARRANTIES
WITH REGARD TO THIS SOFTWARE INCLUDING ALL IMPLIED WARRANTIES OF
MERCHANTABILITY AND FITNESS. IN NO EVENT SHALL THE AUTHOR BE LIABLE FOR
ANY SPECIAL, DIRECT, INDIRECT, OR CONSEQUENTIAL DAMAGES OR ANY DAMAGES
WHATSOEVER RESULTING FROM LOSS OF USE, DATA OR PROFITS, WHETHER IN AN
ACTION OF CONTRACT, NEGLIGENCE OR OTHER TORTIOUS ACTION, ARISING OUT OF
OR IN CONNECTION WITH THE USE OR PERFORMANCE OF THIS SOFTWARE.
`

// BSD2Text is the BSD 2-Clause license body.
const BSD2Text = `BSD 2-Clause License

Copyright (c) <year>, <copyright holders>

Redistribution and use in source and binary forms, with or without
modification, are permitted provided that the following conditions are met:

1. Redistributions of source code must retain the above copyright notice, this
   list of conditions and the following disclaimer.

2. Redistributions in binary form must reproduce the above copyright notice,
   this list of conditions and the following disclaimer in the documentation
   and/or other materials provided with the distribution.

THIS SOFTWARE IS PROVIDED BY THE COPYRIGHT HOLDERS AND CONTRIBUTORS "AS IS"
AND ANY EXPRESS OR IMPLIED WARRANTIES, INCLUDING, BUT NOT LIMITED TO, THE
IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS FOR A PARTICULAR PURPOSE ARE
DISCLAIMED. IN NO EVENT SHALL THE COPYRIGHT HOLDER OR CONTRIBUTORS BE LIABLE
FOR ANY DIRECT, INDIRECT, INCIDENTAL, SPECIAL, EXEMPLARY, OR CONSEQUENTIAL
DAMAGES (INCLUDING, BUT NOT LIMITED TO, PROCUREMENT OF SUBSTITUTE GOODS OR
SERVICES; LOSS OF USE, DATA, OR PROFITS; OR BUSINESS INTERRUPTION) HOWEVER
CAUSED AND ON ANY THEORY OF LIABILITY, WHETHER IN CONTRACT, STRICT LIABILITY,
OR TORT (INCLUDING NEGLIGENCE OR OTHERWISE) ARISING IN ANY WAY OUT OF THE USE
OF THIS SOFTWARE, EVEN IF ADVISED OF THE POSSIBILITY OF SUCH DAMAGE.
`

// ApacheText is the opening of the Apache 2.0 license. The full text is not
// needed to exercise header matching.
const ApacheText = `Apache License
Version 2.0, January 2004
http://www.apache.org/licenses/

TERMS AND CONDITIONS FOR USE, REPRODUCTION, AND DISTRIBUTION

1. Definitions.

"License" shall mean the terms and conditions for use, reproduction, and
distribution as defined by Sections 1 through 9 of this document.

"Licensor" shall mean the copyright owner or entity authorized by the copyright
owner that is granting the License.

"Legal Entity" shall mean the union of the acting entity and all other entities
that control, are controlled by, or are under common control with that entity.

2. Grant of Copyright License. Subject to the terms and conditions of this
License, each Contributor hereby grants to You a perpetual, worldwide,
non-exclusive, no-charge, royalty-free, irrevocable copyright license to
reproduce, prepare Derivative Works of, publicly display, publicly perform,
sublicense, and distribute the Work and such Derivative Works in Source or
Object form.
`

// ApacheHeader is the standard Apache 2.0 source file notice.
const ApacheHeader = `Copyright [yyyy] [name of copyright owner]

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
`

// ZlibText is the zlib license body.
const ZlibText = `This software is provided 'as-is', without any express or implied
warranty. In no event will the authors be held liable for any damages
arising from the use of this software.

Permission is granted to anyone to use this software for any purpose,
including commercial applications, and to alter it and redistribute it
freely, subject to the following restrictions:

1. The origin of this software must not be misrepresented; you must not
   claim that you wrote the original software. If you use this software
   in a product, an acknowledgment in the product documentation would be
   appreciated but is not required.
2. Altered source versions must be plainly marked as such, and must not be
   misrepresented as being the original software.
3. This notice may not be removed or altered from any source distribution.
`

// Fixtures returns the active reference licenses. Deprecated fixtures are
// only written by WriteSPDXFixtures.
func Fixtures() []Fixture {
	return []Fixture{
		{ID: "Apache-2.0", Name: "Apache License 2.0", Text: ApacheText, Header: ApacheHeader},
		{ID: "BSD-2-Clause", Name: `BSD 2-Clause "Simplified" License`, Text: BSD2Text},
		{ID: "ISC", Name: "ISC License", Text: ISCText},
		{ID: "MIT", Name: "MIT License", Text: MITText},
		{ID: "Zlib", Name: "zlib License", Text: ZlibText},
	}
}

// DeprecatedFixture is written alongside Fixtures to exercise filtering.
var DeprecatedFixture = Fixture{
	ID:         "Nunit",
	Name:       "Nunit License",
	Text:       "Copyright (c) 2002-2004 NUnit authors\n\n" + ZlibText,
	Deprecated: true,
}

type spdxDetails struct {
	LicenseID             string `json:"licenseId"`
	Name                  string `json:"name"`
	LicenseText           string `json:"licenseText"`
	StandardLicenseHeader string `json:"standardLicenseHeader,omitempty"`
	IsDeprecated          bool   `json:"isDeprecatedLicenseId"`
}

// WriteSPDXFixtures writes every fixture, including the deprecated one, in the
// license-list-data layout under dir/json/details.
func WriteSPDXFixtures(t testing.TB, dir string) {
	t.Helper()

	all := append(Fixtures(), DeprecatedFixture)
	for _, fixture := range all {
		data, err := json.MarshalIndent(spdxDetails{
			LicenseID:             fixture.ID,
			Name:                  fixture.Name,
			LicenseText:           fixture.Text,
			StandardLicenseHeader: fixture.Header,
			IsDeprecated:          fixture.Deprecated,
		}, "", "  ")
		if err != nil {
			t.Fatalf("marshal fixture %s: %v", fixture.ID, err)
		}
		WriteFile(t, filepath.Join(dir, "json", "details", fixture.ID+".json"), string(data))
	}
}
