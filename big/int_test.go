package big

import (
	"crypto/rand"
	"encoding/json"
	"testing"

	"github.com/privacybydesign/spyfall/cbor"
	"github.com/stretchr/testify/require"
)

func testJSON(t *testing.T, bigint *Int) *Int {
	bts, err := json.Marshal(bigint)
	require.NoError(t, err)
	require.Equal(t, `"`+bigint.String()+`"`, string(bts))
	unmarshaled := new(Int)
	err = json.Unmarshal(bts, unmarshaled)
	require.NoError(t, err)
	require.Zero(t, bigint.Cmp(unmarshaled))
	return unmarshaled
}

func TestInt(t *testing.T) {
	var i int64 = 42
	bigint := NewInt(i)
	unmarshaled := testJSON(t, bigint)
	require.Equal(t, i, unmarshaled.Int64())
}

func TestZero(t *testing.T) {
	var i int64 = 0
	bigint := NewInt(i)
	unmarshaled := testJSON(t, bigint)
	require.Equal(t, i, unmarshaled.Int64())
}

func TestBigInt(t *testing.T) {
	s := "8931748931759284679376938475395713602744853768923750102"
	bigint, ok := new(Int).SetString(s, 10)
	require.True(t, ok)
	unmarshaled := testJSON(t, bigint)
	require.Equal(t, s, unmarshaled.String())
}

func TestRandom(t *testing.T) {
	max := new(Int).Lsh(NewInt(1), 100)
	bigint, err := RandInt(rand.Reader, max)
	require.NoError(t, err)
	testJSON(t, bigint)
}

func TestNegative(t *testing.T) {
	bigint := NewInt(-42)
	_, err := json.Marshal(bigint)
	require.Error(t, err)

	require.Error(t, json.Unmarshal([]byte(`"-42"`), new(Int)))
}

func TestUnquotedJSON(t *testing.T) {
	i := new(Int)
	require.NoError(t, json.Unmarshal([]byte(`123456789012345678901234567890`), i))
	require.Equal(t, "123456789012345678901234567890", i.String())

	require.Error(t, json.Unmarshal([]byte(`"0x1f"`), i))
	require.Error(t, json.Unmarshal([]byte(`1.5`), i))
}

func TestCBOR(t *testing.T) {
	s := "79228162514264337593543950319"
	bigint, ok := new(Int).SetString(s, 10)
	require.True(t, ok)

	bts, err := cbor.Marshal([]*Int{bigint})
	require.NoError(t, err)

	// The puzzles travel as text, so a generic decoder sees plain strings
	var strs []string
	require.NoError(t, cbor.Unmarshal(bts, &strs))
	require.Equal(t, []string{s}, strs)

	var ints []*Int
	require.NoError(t, cbor.Unmarshal(bts, &ints))
	require.Len(t, ints, 1)
	require.Zero(t, bigint.Cmp(ints[0]))
}

func TestCBORRejectsGarbage(t *testing.T) {
	bts, err := cbor.Marshal([]string{"not a number"})
	require.NoError(t, err)
	var ints []*Int
	require.Error(t, cbor.Unmarshal(bts, &ints))
}
