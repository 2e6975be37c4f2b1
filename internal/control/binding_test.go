package control

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Poll", func() {
	bindings := []Binding[string]{
		{"left", PanLeft},
		{"a", PanLeft},
		{"shift", Fast},
		{"plus", ZoomIn},
	}

	It("merges every key that is down", func() {
		down := map[string]bool{"a": true, "shift": true}
		k := Poll(bindings, func(c string) bool { return down[c] })
		Expect(k).To(Equal(PanLeft | Fast))
	})

	It("returns nothing when no key is down", func() {
		Expect(Poll(bindings, func(string) bool { return false })).To(BeZero())
	})

	It("feeds Edge so a held combination presses once", func() {
		down := func(c string) bool { return c == "plus" }
		first := Edge(0, Poll(bindings, down))
		second := Edge(first.Held, Poll(bindings, down))
		Expect(first.Pressed).To(Equal(ZoomIn))
		Expect(second.Pressed).To(BeZero())
	})
})
