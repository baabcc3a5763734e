// Copyright (c) 2026 TIBCO Software Inc.

package sbdf

import (
	"bytes"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("packed7 integers", func() {
	DescribeTable("round-trips and packs to the expected length",
		func(v uint32, wantLen int) {
			var buf bytes.Buffer
			Expect(writePacked7(&buf, v)).To(Succeed())
			Expect(buf.Len()).To(Equal(wantLen))
			Expect(packed7Len(v)).To(Equal(wantLen))

			got, err := readPacked7(&buf)
			Expect(err).NotTo(HaveOccurred())
			Expect(got).To(Equal(v))
		},
		Entry("zero", uint32(0), 1),
		Entry("just under 2^7", uint32(1<<7-1), 1),
		Entry("at 2^7", uint32(1<<7), 2),
		Entry("just under 2^14", uint32(1<<14-1), 2),
		Entry("at 2^14", uint32(1<<14), 3),
		Entry("just under 2^21", uint32(1<<21-1), 3),
		Entry("at 2^21", uint32(1<<21), 4),
		Entry("just under 2^28", uint32(1<<28-1), 4),
		Entry("at 2^28", uint32(1<<28), 5),
		Entry("max uint32", ^uint32(0), 5),
	)

	It("rejects a packed integer longer than 5 bytes", func() {
		// Five continuation bytes, no terminator: past the uint32 bound.
		buf := bytes.NewReader([]byte{0x80, 0x80, 0x80, 0x80, 0x80, 0x01})
		_, err := readPacked7(buf)
		Expect(err).To(MatchError(ErrStructure))
	})
})

var _ = Describe("string and binary primitives", func() {
	It("round-trips a UTF-8 string", func() {
		var buf bytes.Buffer
		Expect(writeString(&buf, "hello, SBDF")).To(Succeed())
		got, err := readString(&buf)
		Expect(err).NotTo(HaveOccurred())
		Expect(got).To(Equal("hello, SBDF"))
	})

	It("round-trips an empty string", func() {
		var buf bytes.Buffer
		Expect(writeString(&buf, "")).To(Succeed())
		got, err := readString(&buf)
		Expect(err).NotTo(HaveOccurred())
		Expect(got).To(Equal(""))
	})

	It("round-trips an opaque byte blob", func() {
		var buf bytes.Buffer
		want := []byte{0x01, 0x02, 0xFF, 0x00}
		Expect(writeBinary(&buf, want)).To(Succeed())
		got, err := readBinary(&buf)
		Expect(err).NotTo(HaveOccurred())
		Expect(got).To(Equal(want))
	})

	It("rejects a negative length prefix", func() {
		var buf bytes.Buffer
		Expect(writeInt32(&buf, -1)).To(Succeed())
		_, err := readString(&buf)
		Expect(err).To(MatchError(ErrStructure))
	})
})

var _ = Describe("fixed-width round trips", func() {
	It("round-trips int32/int64/float32/float64", func() {
		var buf bytes.Buffer
		Expect(writeInt32(&buf, -12345)).To(Succeed())
		Expect(writeInt64(&buf, -9223372036854775000)).To(Succeed())
		Expect(writeFloat32(&buf, 3.5)).To(Succeed())
		Expect(writeFloat64(&buf, -2.25)).To(Succeed())

		i32, err := readInt32(&buf)
		Expect(err).NotTo(HaveOccurred())
		Expect(i32).To(Equal(int32(-12345)))

		i64, err := readInt64(&buf)
		Expect(err).NotTo(HaveOccurred())
		Expect(i64).To(Equal(int64(-9223372036854775000)))

		f32, err := readFloat32(&buf)
		Expect(err).NotTo(HaveOccurred())
		Expect(f32).To(Equal(float32(3.5)))

		f64, err := readFloat64(&buf)
		Expect(err).NotTo(HaveOccurred())
		Expect(f64).To(Equal(-2.25))
	})
})
