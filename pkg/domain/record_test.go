package domain

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromAny(t *testing.T) {
	tests := []struct {
		in      interface{}
		want    Value
		wantErr bool
	}{
		{in: "x", want: String("x")},
		{in: true, want: Bool(true)},
		{in: 7, want: Int(7)},
		{in: int8(-3), want: Int(-3)},
		{in: uint16(9), want: Int(9)},
		{in: uint64(math.MaxInt64), want: Int(math.MaxInt64)},
		{in: float32(0.5), want: Float(0.5)},
		{in: math.Copysign(0, -1), want: Float(0)},
		{in: uint64(math.MaxUint64), wantErr: true},
		{in: math.NaN(), wantErr: true},
		{in: nil, wantErr: true},
		{in: []int{1}, wantErr: true},
	}
	for _, tt := range tests {
		got, err := FromAny(tt.in)
		if tt.wantErr {
			assert.Error(t, err, "%v", tt.in)
			continue
		}
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}
}

func TestParseValue(t *testing.T) {
	assert.Equal(t, Int(42), ParseValue("42"))
	assert.Equal(t, Float(1.5), ParseValue("1.5"))
	assert.Equal(t, Bool(true), ParseValue("true"))
	assert.Equal(t, String("True"), ParseValue("True"))
	assert.Equal(t, String("NaN"), ParseValue("NaN"))
	assert.Equal(t, String("abc"), ParseValue("abc"))

	// quoted values stay strings
	assert.Equal(t, String("007"), ParseValue(`"007"`))
	assert.Equal(t, String("true"), ParseValue(`"true"`))
	assert.Equal(t, String(""), ParseValue(`""`))
	assert.Equal(t, String(`"`), ParseValue(`"`))
	assert.Equal(t, String(`"a"b"`), ParseValue(`"a"b"`))
}

func TestRecord_OrderAndMutation(t *testing.T) {
	r := MustRecord("b", 1, "a", "x", "c", false)
	assert.Equal(t, []string{"b", "a", "c"}, r.Fields())

	r.Set("a", String("y"))
	assert.Equal(t, []string{"b", "a", "c"}, r.Fields())

	r.Delete("b")
	assert.Equal(t, []string{"a", "c"}, r.Fields())
	assert.False(t, r.Has("b"))
	assert.Equal(t, Undefined(), r.Get("b"))

	r.Set("c", Undefined())
	assert.Equal(t, []string{"a"}, r.Fields())

	clone := r.Clone()
	clone.Set("a", String("z"))
	assert.Equal(t, String("y"), r.Get("a"))

	assert.Equal(t, `{a:"y"}`, r.String())
}

func TestRecord_EqualAndMatches(t *testing.T) {
	a := MustRecord("x", 1, "y", "two")
	b := MustRecord("y", "two", "x", 1)
	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(MustRecord("x", 1)))
	assert.True(t, NewRecord().Equal(nil))

	assert.True(t, a.Matches(MustRecord("x", 1)))
	assert.True(t, a.Matches(nil))
	assert.False(t, a.Matches(MustRecord("x", 1.0)))
	assert.False(t, a.Matches(MustRecord("z", 1)))
}

func TestFromPairsAndFromMap(t *testing.T) {
	_, err := FromPairs("a")
	assert.Error(t, err)
	_, err = FromPairs(1, 2)
	assert.Error(t, err)
	_, err = FromPairs("a", nil)
	assert.Error(t, err)

	r, err := FromMap(map[string]interface{}{"b": 2, "a": 1})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, r.Fields())

	_, err = FromMap(map[string]interface{}{"bad": map[string]interface{}{}})
	assert.Error(t, err)
}

func TestRecord_JSONFloatKeepsKind(t *testing.T) {
	data, err := MustRecord("f", 3.0, "i", 3).MarshalJSON()
	require.NoError(t, err)
	assert.JSONEq(t, `{"f":3.0,"i":3}`, string(data))
	assert.Equal(t, `{"f":3.0,"i":3}`, string(data))

	_, err = NewRecord().With("inf", Float(math.Inf(1))).MarshalJSON()
	assert.Error(t, err)
}

func TestRecord_JSONIntegerOverflow(t *testing.T) {
	var r Record
	err := json.Unmarshal([]byte(`{"n":9223372036854775808}`), &r)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "out of int64 range")

	require.NoError(t, json.Unmarshal([]byte(`{"n":9223372036854775807,"f":9223372036854775808.0}`), &r))
	assert.Equal(t, Int(math.MaxInt64), r.Get("n"))
	assert.Equal(t, Float(9223372036854775808.0), r.Get("f"))
}

func TestConfigurationError(t *testing.T) {
	var err error = &ConfigurationError{Reason: "explicit index field list is empty"}
	assert.ErrorIs(t, err, ErrConfiguration)
	assert.Equal(t, "configuration error: explicit index field list is empty", err.Error())
}

func TestPaginate(t *testing.T) {
	recs := make([]*Record, 5)
	for i := range recs {
		recs[i] = MustRecord("n", i)
	}

	page, err := Paginate(recs, &PaginationOptions{Limit: 2, Offset: 1})
	require.NoError(t, err)
	assert.Equal(t, recs[1:3], page.Records)
	assert.True(t, page.HasNext)
	assert.True(t, page.HasPrev)

	page, err = Paginate(recs, &PaginationOptions{Limit: 2, Offset: 10})
	require.NoError(t, err)
	assert.Empty(t, page.Records)
	assert.False(t, page.HasNext)

	page, err = Paginate(recs, nil)
	require.NoError(t, err)
	assert.Len(t, page.Records, 5)

	_, err = Paginate(recs, &PaginationOptions{Offset: -1})
	assert.Error(t, err)
	_, err = Paginate(recs, &PaginationOptions{Limit: 20, MaxLimit: 10})
	assert.Error(t, err)
}
