// Copyright (c) 2026 TIBCO Software Inc.

package sbdf_test

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestSbdf(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "sbdf suite")
}
