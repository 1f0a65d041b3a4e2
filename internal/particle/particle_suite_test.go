package particle

import (
	"testing"

	g "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestParticle(t *testing.T) {
	RegisterFailHandler(g.Fail)
	g.RunSpecs(t, "Particle Suite")
}
