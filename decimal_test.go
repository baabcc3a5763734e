// Copyright (c) 2026 TIBCO Software Inc.

package sbdf

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Decimal", func() {
	DescribeTable("parses and renders plain notation",
		func(literal, rendered string) {
			d, err := ParseDecimal(literal)
			Expect(err).NotTo(HaveOccurred())
			Expect(d.String()).To(Equal(rendered))
		},
		Entry("fractional", "1438.1565", "1438.1565"),
		Entry("fractional, fewer digits", "1538.493", "1538.493"),
		Entry("negative", "-33.4455", "-33.4455"),
		Entry("integer", "42", "42"),
	)

	DescribeTable("round-trips through the 16-byte decimal128 encoding",
		func(literal string) {
			d, err := ParseDecimal(literal)
			Expect(err).NotTo(HaveOccurred())

			buf, err := encodeDecimal128(d)
			Expect(err).NotTo(HaveOccurred())

			got, err := decodeDecimal128(buf)
			Expect(err).NotTo(HaveOccurred())
			Expect(got.String()).To(Equal(d.String()))
		},
		Entry("fractional", "1438.1565"),
		Entry("fractional, fewer digits", "1538.493"),
		Entry("negative", "-33.4455"),
		Entry("zero", "0"),
		Entry("integer with trailing zeros", "33400"),
	)

	It("fails to encode a literal whose coefficient overflows 96 bits", func() {
		d, err := ParseDecimal("1e40")
		Expect(err).NotTo(HaveOccurred())

		_, err = encodeDecimal128(d)
		Expect(err).To(MatchError(ErrDecimalOutOfRange))
	})

	It("builds directly from an int64 coefficient and exponent", func() {
		d := NewDecimal(-33445, -2)
		Expect(d.String()).To(Equal("-334.45"))
	})
})
