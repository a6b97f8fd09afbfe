package current_test

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestCurrent(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Current Suite")
}
