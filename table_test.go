// Copyright (c) 2026 TIBCO Software Inc.

package sbdf_test

import (
	"bytes"
	"time"

	"github.com/tibco/sbdf-go"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func roundTrip(table *sbdf.Table) *sbdf.Table {
	var buf bytes.Buffer
	Expect(sbdf.WriteTable(&buf, table)).To(Succeed())
	got, err := sbdf.ReadTable(&buf)
	Expect(err).NotTo(HaveOccurred())
	return got
}

var _ = Describe("Table round trip", func() {
	It("writes and reads back a zero-row table with twelve typed columns", func() {
		table := sbdf.NewTable()
		types := []struct {
			name string
			vt   sbdf.ValueTypeID
		}{
			{"Boolean", sbdf.ValueTypeBool},
			{"Integer", sbdf.ValueTypeInt},
			{"Long", sbdf.ValueTypeLong},
			{"Float", sbdf.ValueTypeFloat},
			{"Double", sbdf.ValueTypeDouble},
			{"DateTime", sbdf.ValueTypeDateTime},
			{"Date", sbdf.ValueTypeDate},
			{"Time", sbdf.ValueTypeTime},
			{"TimeSpan", sbdf.ValueTypeTimeSpan},
			{"String", sbdf.ValueTypeString},
			{"Binary", sbdf.ValueTypeBinary},
			{"Decimal", sbdf.ValueTypeDecimal},
		}
		for _, tc := range types {
			_, err := table.AddColumn(tc.name, tc.vt, nil)
			Expect(err).NotTo(HaveOccurred())
		}

		got := roundTrip(table)
		Expect(got.Columns).To(HaveLen(12))
		Expect(got.RowCount()).To(Equal(0))
		for i, tc := range types {
			Expect(got.Columns[i].Name).To(Equal(tc.name))
			Expect(got.Columns[i].Type).To(Equal(tc.vt))
		}
	})

	It("surfaces invalid cells as missing and preserves valid ones", func() {
		table := sbdf.NewTable()
		_, err := table.AddColumn("Flag", sbdf.ValueTypeBool, nil)
		Expect(err).NotTo(HaveOccurred())
		_, err = table.AddColumn("Count", sbdf.ValueTypeInt, nil)
		Expect(err).NotTo(HaveOccurred())
		_, err = table.AddColumn("Label", sbdf.ValueTypeString, nil)
		Expect(err).NotTo(HaveOccurred())

		Expect(table.Append([]any{false, int32(69), "The"}, []bool{true, true, false})).To(Succeed())

		got := roundTrip(table)
		Expect(got.RowCount()).To(Equal(1))

		flag := got.Columns[0]
		Expect(flag.IsValid(0)).To(BeTrue())
		v, err := flag.At(0)
		Expect(err).NotTo(HaveOccurred())
		Expect(v).To(Equal(false))

		label := got.Columns[2]
		Expect(label.IsValid(0)).To(BeFalse())
		v, err = label.At(0)
		Expect(err).NotTo(HaveOccurred())
		Expect(v).To(Equal("")) // STRING's missing-value sentinel
	})

	It("streams a row count that spans more than one slice", func() {
		table := sbdf.NewTable()
		_, err := table.AddColumn("Idx", sbdf.ValueTypeLong, nil)
		Expect(err).NotTo(HaveOccurred())
		_, err = table.AddColumn("Value", sbdf.ValueTypeDouble, nil)
		Expect(err).NotTo(HaveOccurred())

		const rows = 10001
		for i := 0; i < rows; i++ {
			Expect(table.Append([]any{int64(i), float64(i) * 1.5}, nil)).To(Succeed())
		}

		var buf bytes.Buffer
		tw, err := sbdf.NewTableWriter(&buf, table)
		Expect(err).NotTo(HaveOccurred())
		Expect(tw.WriteRows(0, 10000)).To(Succeed())
		Expect(tw.WriteRows(10000, 10001)).To(Succeed())
		Expect(tw.Close()).To(Succeed())

		got, err := sbdf.ReadTable(&buf)
		Expect(err).NotTo(HaveOccurred())
		Expect(got.RowCount()).To(Equal(rows))

		idx, ok := sbdf.Values[int64](got.Columns[0])
		Expect(ok).To(BeTrue())
		Expect(idx[0]).To(Equal(int64(0)))
		Expect(idx[rows-1]).To(Equal(int64(rows - 1)))

		val, ok := sbdf.Values[float64](got.Columns[1])
		Expect(ok).To(BeTrue())
		Expect(val[rows-1]).To(Equal(float64(rows-1) * 1.5))
	})

	It("infers LongInteger for 64-bit integer cells and Integer for 32-bit ones", func() {
		vt, err := sbdf.InferSliceValueType([]any{int64(500400300200), int64(500400300201), nil, int64(500400300203)})
		Expect(err).NotTo(HaveOccurred())
		Expect(vt).To(Equal(sbdf.ValueTypeLong))

		vtSmall, err := sbdf.InferSliceValueType([]any{int32(0), int32(1), nil, int32(3)})
		Expect(err).NotTo(HaveOccurred())
		Expect(vtSmall).To(Equal(sbdf.ValueTypeInt))
	})

	It("drops missing cells before inferring a slice's value type", func() {
		vt, err := sbdf.InferSliceValueType([]any{nil, int32(7), nil})
		Expect(err).NotTo(HaveOccurred())
		Expect(vt).To(Equal(sbdf.ValueTypeInt))
	})

	It("fails inference when every cell is missing", func() {
		_, err := sbdf.InferSliceValueType([]any{nil, nil, nil})
		Expect(err).To(HaveOccurred())

		_, err = sbdf.InferSliceValueType(nil)
		Expect(err).To(HaveOccurred())
	})

	It("round-trips time-typed columns through millisecond precision", func() {
		table := sbdf.NewTable()
		_, err := table.AddColumn("When", sbdf.ValueTypeDateTime, nil)
		Expect(err).NotTo(HaveOccurred())

		when := time.Date(1583, time.January, 2, 0, 22, 20, 0, time.UTC)
		Expect(table.Append([]any{when}, nil)).To(Succeed())

		got := roundTrip(table)
		times, ok := sbdf.Values[time.Time](got.Columns[0])
		Expect(ok).To(BeTrue())
		Expect(times[0].Equal(when)).To(BeTrue())
	})

	It("sanitizes invalid cells to the missing-value sentinel even when a Table is built by hand", func() {
		table := sbdf.NewTable()
		col, err := table.AddColumn("N", sbdf.ValueTypeInt, nil)
		Expect(err).NotTo(HaveOccurred())

		// Bypass Append: set Values/Valid directly, leaving garbage (not the
		// sentinel) at the invalid index.
		col.Values = []int32{1, 2147483647, 3}
		col.Valid = []bool{true, false, true}

		var buf bytes.Buffer
		Expect(sbdf.WriteTable(&buf, table)).To(Succeed())
		Expect(buf.Bytes()).NotTo(ContainSubstring(string([]byte{0xff, 0xff, 0xff, 0x7f})))

		got, err := sbdf.ReadTable(&buf)
		Expect(err).NotTo(HaveOccurred())
		Expect(got.Columns[0].IsValid(1)).To(BeFalse())
		vals, ok := sbdf.Values[int32](got.Columns[0])
		Expect(ok).To(BeTrue())
		Expect(vals[1]).To(Equal(int32(0)))
	})
})
