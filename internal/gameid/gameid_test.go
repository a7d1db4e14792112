package gameid

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate(t *testing.T) {
	id := Generate()
	assert.Len(t, id, 26)
	assert.NoError(t, Validate(id))
}

func TestGenerateUnique(t *testing.T) {
	ids := make(map[string]bool)
	for range 100 {
		id := Generate()
		require.False(t, ids[id], "duplicate ID generated: %s", id)
		ids[id] = true
	}
}

func TestGenerateTimeSorted(t *testing.T) {
	var ids []string
	for range 5 {
		ids = append(ids, Generate())
		time.Sleep(2 * time.Millisecond)
	}
	for i := 1; i < len(ids); i++ {
		assert.Negative(t, strings.Compare(ids[i-1], ids[i]), "IDs not sorted: %s >= %s", ids[i-1], ids[i])
	}
}

func TestFromReader(t *testing.T) {
	id, err := FromReader(bytes.NewReader(bytes.Repeat([]byte{0xAB}, 64)))
	require.NoError(t, err)
	assert.NoError(t, Validate(id))

	_, err = FromReader(bytes.NewReader(nil))
	assert.Error(t, err)
}

func TestEncodeBase32(t *testing.T) {
	assert.Equal(t, strings.Repeat("0", 26), encodeBase32(uuid.UUID{}))

	var max uuid.UUID
	for i := range max {
		max[i] = 0xFF
	}
	assert.Equal(t, "7"+strings.Repeat("z", 25), encodeBase32(max))

	var one uuid.UUID
	one[15] = 1
	assert.Equal(t, strings.Repeat("0", 25)+"1", encodeBase32(one))
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		id      string
		wantErr bool
	}{
		{"valid", "01h455vb4pex5vsknk084sn02q", false},
		{"too short", "01h455vb4pex5vsknk084sn02", true},
		{"too long", "01h455vb4pex5vsknk084sn02qq", true},
		{"first char too big", "81h455vb4pex5vsknk084sn02q", true},
		{"invalid char", "01h455vb4pex5vsknk084sn0iq", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.id)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
