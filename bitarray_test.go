// Copyright (c) 2026 TIBCO Software Inc.

package sbdf

import (
	"bytes"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("bit array", func() {
	It("round-trips an arbitrary bit pattern, ignoring padding", func() {
		bits := []bool{true, false, true, true, false, false, false, true, true, false}
		var buf bytes.Buffer
		Expect(writeBitArray(&buf, bits)).To(Succeed())

		got, err := readBitArray(&buf)
		Expect(err).NotTo(HaveOccurred())
		Expect(got).To(Equal(bits))
	})

	It("treats zero bits as valid and empty", func() {
		var buf bytes.Buffer
		Expect(writeBitArray(&buf, nil)).To(Succeed())

		got, err := readBitArray(&buf)
		Expect(err).NotTo(HaveOccurred())
		Expect(got).To(BeEmpty())
	})

	It("packs MSB-first within each byte", func() {
		// 1,0,0,0,0,0,0,0 -> 0x80
		var buf bytes.Buffer
		Expect(writeBitArray(&buf, []bool{true, false, false, false, false, false, false, false})).To(Succeed())
		b := buf.Bytes()
		// 4-byte count prefix, then the packed byte.
		Expect(b[4]).To(Equal(byte(0x80)))
	})
})
