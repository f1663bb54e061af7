// Copyright 2025 Aperture Team
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package id_test

import (
	"testing"

	"github.com/go-aperture/aperture/pkg/id"
)

func TestGetUUID(t *testing.T) {
	uuid := id.GetUUID()
	if len(uuid) != 36 {
		t.Errorf("uuid length is not 36")
	}
}

func TestGetUUIDWithoutDashes(t *testing.T) {
	uuid := id.GetUUIDWithoutDashes()
	if len(uuid) != 32 {
		t.Error("uuid length is not 32")
	}
}

func TestGetXid(t *testing.T) {
	got := id.GetXid()
	if len(got) != 20 {
		t.Errorf("GetXid() length = %d, want 20", len(got))
	}
}

func TestGetUlid(t *testing.T) {
	got := id.GetUlid()
	if len(got) != 26 {
		t.Errorf("GetUlid() length = %d, want 26", len(got))
	}
}
