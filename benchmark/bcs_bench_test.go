package benchmark

import (
	"math/big"
	"testing"

	"github.com/movecraft-labs/aptos-sdk/internal/bcs"
)

// SampleStruct is a test struct for BCS benchmarks
type SampleStruct struct {
	Num     uint64
	Enabled bool
	Data    []byte
	Name    string
}

func (s *SampleStruct) MarshalBCS(ser *bcs.Serializer) {
	ser.U64(s.Num)
	ser.Bool(s.Enabled)
	ser.WriteBytes(s.Data)
	ser.WriteString(s.Name)
}

func (s *SampleStruct) UnmarshalBCS(des *bcs.Deserializer) {
	s.Num = des.U64()
	s.Enabled = des.Bool()
	s.Data = des.ReadBytes()
	s.Name = des.ReadString()
}

// Benchmark BCS primitive serialization

func BenchmarkBCS_SerializeU64(b *testing.B) {
	ser := &bcs.Serializer{}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		ser.U64(12345678901234567890)
		ser.Reset()
	}
}

func BenchmarkBCS_SerializeU128(b *testing.B) {
	val := big.NewInt(0)
	val.SetString("340282366920938463463374607431768211455", 10) // max u128
	ser := &bcs.Serializer{}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		ser.U128(val)
		ser.Reset()
	}
}

func BenchmarkBCS_SerializeBytes(b *testing.B) {
	data := make([]byte, 1024)
	for i := range data {
		data[i] = byte(i % 256)
	}
	ser := &bcs.Serializer{}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		ser.WriteBytes(data)
		ser.Reset()
	}
}

func BenchmarkBCS_SerializeString(b *testing.B) {
	str := "The quick brown fox jumps over the lazy dog. This is a reasonably long string for benchmarking purposes."
	ser := &bcs.Serializer{}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		ser.WriteString(str)
		ser.Reset()
	}
}

func BenchmarkBCS_SerializeUleb128(b *testing.B) {
	ser := &bcs.Serializer{}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		ser.Uleb128(16383) // 2-byte ULEB128
		ser.Reset()
	}
}

// Benchmark struct serialization

func BenchmarkBCS_SerializeStruct(b *testing.B) {
	s := &SampleStruct{
		Num:     12345678901234567890,
		Enabled: true,
		Data:    []byte{0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08},
		Name:    "TestAccount",
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, err := bcs.Serialize(s)
		if err != nil {
			b.Fatal(err)
		}
	}
}

// Benchmark deserialization

func BenchmarkBCS_DeserializeU64(b *testing.B) {
	data := []byte{0xD2, 0x0A, 0x1F, 0xEB, 0x8C, 0xA9, 0x54, 0xAB} // 12345678901234567890 in LE
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		des := bcs.NewDeserializer(data)
		_ = des.U64()
	}
}

func BenchmarkBCS_DeserializeStruct(b *testing.B) {
	s := &SampleStruct{
		Num:     12345678901234567890,
		Enabled: true,
		Data:    []byte{0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08},
		Name:    "TestAccount",
	}
	data, _ := bcs.Serialize(s)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		result := &SampleStruct{}
		des := bcs.NewDeserializer(data)
		result.UnmarshalBCS(des)
	}
}

// Benchmark sequence serialization

func BenchmarkBCS_SerializeSequence(b *testing.B) {
	items := make([]uint64, 100)
	for i := range items {
		items[i] = uint64(i * 12345)
	}
	ser := &bcs.Serializer{}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		bcs.SerializeSequenceFunc(ser, items, func(ser *bcs.Serializer, item uint64) {
			ser.U64(item)
		})
		ser.Reset()
	}
}

// Benchmark combined serialize + deserialize round-trip

func BenchmarkBCS_RoundTrip(b *testing.B) {
	s := &SampleStruct{
		Num:     12345678901234567890,
		Enabled: true,
		Data:    []byte{0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08},
		Name:    "TestAccount",
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		data, err := bcs.Serialize(s)
		if err != nil {
			b.Fatal(err)
		}
		result := &SampleStruct{}
		des := bcs.NewDeserializer(data)
		result.UnmarshalBCS(des)
	}
}
