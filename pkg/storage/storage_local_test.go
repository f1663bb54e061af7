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

package storage

import (
	"bytes"
	"context"
	"testing"

	appctx "github.com/go-aperture/aperture/pkg/ctx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestLocal(t *testing.T) (*LocalStorage, *appctx.Context) {
	t.Helper()
	s, err := newLocal(&Storage{Provider: StorageLocal, LocalDir: t.TempDir()})
	require.NoError(t, err)
	return s, appctx.NewContext(context.Background(), zap.NewNop().Sugar())
}

func TestLocalPutGetRoundTrip(t *testing.T) {
	s, c := newTestLocal(t)

	payload := []byte("jpeg bytes")
	name, err := s.PutObject(c, "a.jpg", bytes.NewReader(payload), int64(len(payload)), "image/jpeg")
	require.NoError(t, err)
	assert.Equal(t, "a.jpg", name)

	got, err := s.GetObject(c, "a.jpg")
	require.NoError(t, err)
	assert.Equal(t, payload, got)
}

func TestLocalListAndDelete(t *testing.T) {
	s, c := newTestLocal(t)

	for _, name := range []string{"a.jpg", "b.jpg"} {
		_, err := s.PutObject(c, name, bytes.NewReader([]byte{1}), 1, "image/jpeg")
		require.NoError(t, err)
	}

	names, err := s.ListObjects(c)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"a.jpg", "b.jpg"}, names)

	require.NoError(t, s.Delete(c, "a.jpg"))
	names, err = s.ListObjects(c)
	require.NoError(t, err)
	assert.Equal(t, []string{"b.jpg"}, names)
}

func TestIsSafeObjectName(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want bool
	}{
		{name: "plain file", in: "a.jpg", want: true},
		{name: "thumbnail", in: "thumb_a.jpg", want: true},
		{name: "empty", in: "", want: false},
		{name: "dot", in: ".", want: false},
		{name: "dotdot", in: "..", want: false},
		{name: "slash", in: "dir/a.jpg", want: false},
		{name: "backslash", in: `dir\a.jpg`, want: false},
		{name: "traversal", in: "..%2fetc", want: false},
		{name: "embedded dotdot", in: "a..jpg", want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsSafeObjectName(tt.in))
		})
	}
}

func TestLocalRejectsTraversal(t *testing.T) {
	s, c := newTestLocal(t)

	_, err := s.GetObject(c, "../secret")
	assert.Error(t, err)

	err = s.Delete(c, "../../etc/passwd")
	assert.Error(t, err)
}
