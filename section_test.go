// Copyright (c) 2026 TIBCO Software Inc.

package sbdf

import (
	"bytes"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("file header", func() {
	It("round-trips the current major/minor version", func() {
		var buf bytes.Buffer
		Expect(writeFileHeader(&buf)).To(Succeed())
		major, minor, err := readFileHeader(&buf)
		Expect(err).NotTo(HaveOccurred())
		Expect(major).To(Equal(fileHeaderMajorVersion))
		Expect(minor).To(Equal(fileHeaderMinorVersion))
	})

	It("rejects an unsupported major version", func() {
		var buf bytes.Buffer
		Expect(writeSectionHeader(&buf, SectionFileHeader)).To(Succeed())
		Expect(writeUint8(&buf, 2)).To(Succeed())
		Expect(writeUint8(&buf, fileHeaderMinorVersion)).To(Succeed())

		_, _, err := readFileHeader(&buf)
		Expect(err).To(HaveOccurred())
	})

	It("rejects an unsupported minor version", func() {
		var buf bytes.Buffer
		Expect(writeSectionHeader(&buf, SectionFileHeader)).To(Succeed())
		Expect(writeUint8(&buf, fileHeaderMajorVersion)).To(Succeed())
		Expect(writeUint8(&buf, 7)).To(Succeed())

		_, _, err := readFileHeader(&buf)
		Expect(err).To(HaveOccurred())
	})
})
