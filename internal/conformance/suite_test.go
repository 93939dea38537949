package conformance

import (
	"os"
	"path/filepath"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Suite files", func() {
	var dir string

	BeforeEach(func() {
		dir = GinkgoT().TempDir()
	})

	write := func(name, content string) string {
		path := filepath.Join(dir, name)
		Expect(os.WriteFile(path, []byte(content), 0o644)).To(Succeed())
		return path
	}

	It("should load cases with defaults", func() {
		path := write("a.yaml", `cases:
  - name: one
    source: "+."
    stdin: "x"
    tape_size: 8
    bounds_check: false
    expect:
      stdout_hex: "01"
`)
		s, err := LoadSuite(path)
		Expect(err).NotTo(HaveOccurred())
		Expect(s.Name).To(Equal("a.yaml"))
		Expect(s.Timeout.Duration()).To(Equal(10 * time.Second))
		Expect(s.Cases).To(HaveLen(1))

		c := s.Cases[0]
		Expect(c.TapeSize).To(Equal(8))
		Expect(c.boundsCheck()).To(BeFalse())
		Expect(c.Expect.StdoutBytes()).To(Equal([]byte{0x01}))
	})

	It("should default bounds checking on", func() {
		Expect(Case{}.boundsCheck()).To(BeTrue())
	})

	It("should parse the timeout", func() {
		s, err := LoadSuite(write("t.yaml", "name: t\ntimeout: 250ms\ncases: []\n"))
		Expect(err).NotTo(HaveOccurred())
		Expect(s.Timeout.Duration()).To(Equal(250 * time.Millisecond))
	})

	It("should reject bad files", func() {
		for _, content := range []string{
			"cases:\n  - source: '+'\n",
			"cases:\n  - name: a\n  - name: a\n",
			"cases:\n  - name: a\n    expect:\n      stdout_hex: zz\n",
			"timeout: soon\n",
			"cases: [\n",
		} {
			_, err := LoadSuite(write("bad.yaml", content))
			Expect(err).To(HaveOccurred(), content)
		}
	})

	It("should load a directory in name order", func() {
		write("b.yaml", "name: second\ncases: []\n")
		write("a.yaml", "name: first\ncases: []\n")
		write("ignored.txt", "not yaml")

		suites, err := LoadDir(dir)
		Expect(err).NotTo(HaveOccurred())
		Expect(suites).To(HaveLen(2))
		Expect(suites[0].Name).To(Equal("first"))
		Expect(suites[1].Name).To(Equal("second"))
	})

	It("should fail on an empty directory", func() {
		_, err := LoadDir(dir)
		Expect(err).To(HaveOccurred())
	})

	It("should load the bundled programs", func() {
		suites, err := LoadDir("testdata")
		Expect(err).NotTo(HaveOccurred())
		Expect(len(suites)).To(BeNumerically(">=", 2))
	})
})
