// Copyright (c) 2026 TIBCO Software Inc.

package sbdf_test

import (
	"bytes"

	"github.com/tibco/sbdf-go"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Metadata", func() {
	Context("mutation", func() {
		It("rejects a duplicate name", func() {
			m := sbdf.NewMetadata()
			Expect(m.AddValue("Name", sbdf.ValueTypeString, "x")).To(Succeed())
			err := m.AddValue("Name", sbdf.ValueTypeString, "y")
			Expect(err).To(MatchError(sbdf.ErrMetadataExists))
		})

		It("rejects mutation after Seal", func() {
			m := sbdf.NewMetadata()
			Expect(m.AddValue("Name", sbdf.ValueTypeString, "x")).To(Succeed())
			m.Seal()
			Expect(m.IsSealed()).To(BeTrue())
			err := m.AddValue("Other", sbdf.ValueTypeInt, int32(1))
			Expect(err).To(MatchError(sbdf.ErrMetadataSealed))
			Expect(m.Remove("Name")).To(BeFalse())
		})

		It("rejects SetValue of the wrong value type", func() {
			m := sbdf.NewMetadata()
			Expect(m.AddValue("Count", sbdf.ValueTypeInt, int32(1))).To(Succeed())
			err := m.SetValue("Count", sbdf.ValueTypeString, "nope")
			Expect(err).To(MatchError(sbdf.ErrValueTypeMismatch))
		})

		It("removes an existing entry", func() {
			m := sbdf.NewMetadata()
			Expect(m.AddValue("Name", sbdf.ValueTypeString, "x")).To(Succeed())
			Expect(m.Remove("Name")).To(BeTrue())
			Expect(m.Exists("Name")).To(BeFalse())
			Expect(m.Names()).To(BeEmpty())
		})

		It("preserves insertion order", func() {
			m := sbdf.NewMetadata()
			Expect(m.AddValue("c", sbdf.ValueTypeInt, int32(3))).To(Succeed())
			Expect(m.AddValue("a", sbdf.ValueTypeInt, int32(1))).To(Succeed())
			Expect(m.AddValue("b", sbdf.ValueTypeInt, int32(2))).To(Succeed())
			Expect(m.Names()).To(Equal([]string{"c", "a", "b"}))
		})
	})

	Context("wire round trip", func() {
		It("survives a write/read cycle through a table's column metadata", func() {
			table := sbdf.NewTable()
			col, err := table.AddColumn("Price", sbdf.ValueTypeDouble, nil)
			Expect(err).NotTo(HaveOccurred())
			Expect(col.Metadata.AddValue("Description", sbdf.ValueTypeString, "unit price")).To(Succeed())
			Expect(table.Append([]any{1.5}, nil)).To(Succeed())

			var buf bytes.Buffer
			Expect(sbdf.WriteTable(&buf, table)).To(Succeed())

			got, err := sbdf.ReadTable(&buf)
			Expect(err).NotTo(HaveOccurred())
			Expect(got.Columns).To(HaveLen(1))

			readCol := got.Columns[0]
			Expect(readCol.Name).To(Equal("Price"))
			Expect(readCol.Type).To(Equal(sbdf.ValueTypeDouble))
			desc, ok := readCol.Metadata.Get("Description")
			Expect(ok).To(BeTrue())
			Expect(desc).To(Equal("unit price"))
			Expect(readCol.Metadata.IsSealed()).To(BeTrue())
		})

		It("rejects a table whose columns disagree on a shared field's type", func() {
			table := sbdf.NewTable()
			colA, err := table.AddColumn("A", sbdf.ValueTypeInt, nil)
			Expect(err).NotTo(HaveOccurred())
			Expect(colA.Metadata.AddValue("Unit", sbdf.ValueTypeString, "usd")).To(Succeed())

			colB, err := table.AddColumn("B", sbdf.ValueTypeInt, nil)
			Expect(err).NotTo(HaveOccurred())
			Expect(colB.Metadata.AddValue("Unit", sbdf.ValueTypeInt, int32(1))).To(Succeed())

			var buf bytes.Buffer
			err = sbdf.WriteTable(&buf, table)
			Expect(err).To(MatchError(sbdf.ErrMetadataInconsistent))
		})
	})
})
