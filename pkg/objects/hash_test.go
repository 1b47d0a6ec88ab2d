package objects

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeObjectHashKnownValue(t *testing.T) {
	// sha1("blob 6\0hello\n"), a well-known fixture value
	hash := ComputeObjectHash(BlobType, []byte("hello\n"))
	assert.Equal(t, ObjectHash("ce013625030ba8dba906f756967f9e9ca394464a"), hash)
}

func TestComputeObjectHashEmptyPayload(t *testing.T) {
	hash := ComputeObjectHash(BlobType, nil)
	assert.Equal(t, ObjectHash("e69de29bb2d1d6434b8b29ae775ad8c2e48c5391"), hash)
}

func TestHashDependsOnKind(t *testing.T) {
	payload := []byte("same payload")
	assert.NotEqual(t,
		ComputeObjectHash(BlobType, payload),
		ComputeObjectHash(CommitType, payload))
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		hash    ObjectHash
		wantErr bool
	}{
		{"valid", "ce013625030ba8dba906f756967f9e9ca394464a", false},
		{"too short", "ce0136", true},
		{"too long", "ce013625030ba8dba906f756967f9e9ca394464a00", true},
		{"non-hex", "zz013625030ba8dba906f756967f9e9ca394464a", true},
		{"empty", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotErr := tt.hash.Validate()
			if tt.wantErr {
				assert.Error(t, gotErr)
			} else {
				assert.NoError(t, gotErr)
			}
		})
	}
}

func TestNewObjectHashFromStringLowercases(t *testing.T) {
	hash, err := NewObjectHashFromString("CE013625030BA8DBA906F756967F9E9CA394464A")
	require.NoError(t, err)
	assert.Equal(t, ObjectHash("ce013625030ba8dba906f756967f9e9ca394464a"), hash)
}

func TestShort(t *testing.T) {
	hash := ObjectHash("ce013625030ba8dba906f756967f9e9ca394464a")
	assert.Equal(t, "ce01362", hash.Short())
}

func TestBytesRoundTrip(t *testing.T) {
	hash := ObjectHash("ce013625030ba8dba906f756967f9e9ca394464a")
	raw, err := hash.Bytes()
	require.NoError(t, err)
	assert.Len(t, raw, 20)
}
