// Copyright (c) 2026 TIBCO Software Inc.

package sbdf

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestSbdfInternal(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "sbdf internal suite")
}
