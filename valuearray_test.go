// Copyright (c) 2026 TIBCO Software Inc.

package sbdf

import (
	"bytes"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("value array", func() {
	It("round-trips a PLAIN int32 array", func() {
		var buf bytes.Buffer
		values := []int32{1, 2, 3, -4}
		Expect(writeValueArrayPlain(&buf, ValueTypeInt, values)).To(Succeed())

		got, err := readValueArray(&buf)
		Expect(err).NotTo(HaveOccurred())
		Expect(got.Type).To(Equal(ValueTypeInt))
		Expect(got.Encoding).To(Equal(EncodingPlain))
		Expect(got.Values).To(Equal(values))
	})

	It("round-trips a PLAIN string array", func() {
		var buf bytes.Buffer
		values := []string{"alpha", "", "gamma"}
		Expect(writeValueArrayPlain(&buf, ValueTypeString, values)).To(Succeed())

		got, err := readValueArray(&buf)
		Expect(err).NotTo(HaveOccurred())
		Expect(got.Values).To(Equal(values))
	})

	It("rejects a non-UTF-8 string scalar", func() {
		var buf bytes.Buffer
		err := encodeScalar(&buf, ValueTypeString, string([]byte{0xff, 0xfe}))
		Expect(err).To(MatchError(ErrInvalidUTF8String))
	})

	It("round-trips a BIT array", func() {
		var buf bytes.Buffer
		bits := []bool{true, false, true}
		Expect(writeValueArrayBit(&buf, bits)).To(Succeed())

		got, err := readValueArray(&buf)
		Expect(err).NotTo(HaveOccurred())
		Expect(got.Encoding).To(Equal(EncodingBit))
		Expect(got.Values).To(Equal(bits))
	})

	It("fully expands a RUN_LENGTH array into a flat, row-aligned slice", func() {
		var buf bytes.Buffer
		// encoding, vtype
		Expect(writeUint8(&buf, byte(EncodingRunLength))).To(Succeed())
		Expect(writeUint8(&buf, byte(ValueTypeInt))).To(Succeed())
		// run_count
		Expect(writeInt32(&buf, 3)).To(Succeed())
		// INTERNAL_BYTE plain-array of run lengths: 2, 1, 3
		Expect(writeInt32(&buf, 3)).To(Succeed())
		Expect(buf.WriteByte(2)).To(BeNil())
		Expect(buf.WriteByte(1)).To(BeNil())
		Expect(buf.WriteByte(3)).To(BeNil())
		// plain-array of run values: 10, 20, 30
		Expect(writePlainArray(&buf, ValueTypeInt, []int32{10, 20, 30})).To(Succeed())

		got, err := readValueArray(&buf)
		Expect(err).NotTo(HaveOccurred())
		Expect(got.Encoding).To(Equal(EncodingRunLength))
		Expect(got.Values).To(Equal([]int32{10, 10, 20, 30, 30, 30}))
	})

	It("rejects an unknown array encoding", func() {
		var buf bytes.Buffer
		Expect(writeUint8(&buf, 0x7F)).To(Succeed())
		Expect(writeUint8(&buf, byte(ValueTypeInt))).To(Succeed())
		_, err := readValueArray(&buf)
		Expect(err).To(MatchError(ErrUnknownArrayEncoding))
	})
})
