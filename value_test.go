package typelite

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValueConversions(t *testing.T) {
	t.Run("IntegerSource", func(t *testing.T) {
		v := Int64Value(1)

		n64, ok := v.AsInt64()
		assert.True(t, ok)
		assert.Equal(t, int64(1), n64)

		n32, ok := v.AsInt32()
		assert.True(t, ok)
		assert.Equal(t, int32(1), n32)

		f, ok := v.AsFloat()
		assert.True(t, ok)
		assert.Equal(t, 1.0, f)

		s, ok := v.AsText()
		assert.True(t, ok)
		assert.Equal(t, "1", s)

		_, ok = v.AsBlob()
		assert.False(t, ok)
	})

	t.Run("IntegerTruncatesToInt32", func(t *testing.T) {
		v := Int64Value(1 << 40)
		n32, ok := v.AsInt32()
		assert.True(t, ok)
		assert.Equal(t, int32(0), n32)
	})

	t.Run("FloatSource", func(t *testing.T) {
		v := FloatValue(1.0)

		s, ok := v.AsText()
		assert.True(t, ok)
		assert.Equal(t, "1.0", s)

		f, ok := v.AsFloat()
		assert.True(t, ok)
		assert.Equal(t, 1.0, f)

		n, ok := FloatValue(1.9).AsInt64()
		assert.True(t, ok)
		assert.Equal(t, int64(1), n)

		n, ok = FloatValue(-1.9).AsInt64()
		assert.True(t, ok)
		assert.Equal(t, int64(-1), n)
	})

	t.Run("FloatTextAlwaysHasFraction", func(t *testing.T) {
		cases := map[float64]string{
			1.0:    "1.0",
			-2.0:   "-2.0",
			3.5:    "3.5",
			0.0:    "0.0",
			123.25: "123.25",
		}
		for in, want := range cases {
			s, ok := FloatValue(in).AsText()
			assert.True(t, ok)
			assert.Equal(t, want, s)
		}
	})

	t.Run("TextSource", func(t *testing.T) {
		n, ok := TextValue("1").AsInt64()
		assert.True(t, ok)
		assert.Equal(t, int64(1), n)

		f, ok := TextValue("1.5").AsFloat()
		assert.True(t, ok)
		assert.Equal(t, 1.5, f)

		s, ok := TextValue("hello").AsText()
		assert.True(t, ok)
		assert.Equal(t, "hello", s)

		_, ok = TextValue("not a number").AsInt64()
		assert.False(t, ok)

		_, ok = TextValue("not a number").AsFloat()
		assert.False(t, ok)
	})

	t.Run("BlobSource", func(t *testing.T) {
		v := BlobValue([]byte{1, 2, 3})

		b, ok := v.AsBlob()
		assert.True(t, ok)
		assert.Equal(t, []byte{1, 2, 3}, b)

		_, ok = v.AsInt64()
		assert.False(t, ok)
		_, ok = v.AsFloat()
		assert.False(t, ok)
		_, ok = v.AsText()
		assert.False(t, ok)
	})

	t.Run("NullSource", func(t *testing.T) {
		assert.True(t, Null.IsNull())

		_, ok := Null.AsInt64()
		assert.False(t, ok)
		_, ok = Null.AsFloat()
		assert.False(t, ok)
		_, ok = Null.AsText()
		assert.False(t, ok)
		_, ok = Null.AsBlob()
		assert.False(t, ok)
	})

	t.Run("NilBlobIsNull", func(t *testing.T) {
		assert.True(t, BlobValue(nil).IsNull())
		assert.False(t, BlobValue([]byte{}).IsNull())
	})

	t.Run("ZeroValueIsNull", func(t *testing.T) {
		var v Value
		assert.True(t, v.IsNull())
		assert.Equal(t, TypeNull, v.Type())
	})

	t.Run("Types", func(t *testing.T) {
		assert.Equal(t, TypeInteger, IntValue(1).Type())
		assert.Equal(t, TypeFloat, FloatValue(1).Type())
		assert.Equal(t, TypeText, TextValue("x").Type())
		assert.Equal(t, TypeBlob, BlobValue([]byte{0}).Type())
		assert.Equal(t, TypeNull, Null.Type())
	})

	t.Run("String", func(t *testing.T) {
		assert.Equal(t, "42", IntValue(42).String())
		assert.Equal(t, "1.5", FloatValue(1.5).String())
		assert.Equal(t, "hi", TextValue("hi").String())
		assert.Equal(t, "NULL", Null.String())
		assert.Equal(t, "x'ff'", BlobValue([]byte{0xff}).String())
	})

	t.Run("Any", func(t *testing.T) {
		assert.Equal(t, int64(1), IntValue(1).Any())
		assert.Equal(t, 1.5, FloatValue(1.5).Any())
		assert.Equal(t, "x", TextValue("x").Any())
		assert.Equal(t, []byte{1}, BlobValue([]byte{1}).Any())
		assert.Nil(t, Null.Any())
	})
}
