package pns

import "testing"

func TestArenaAllocBumpsThenReusesFreeQueue(t *testing.T) {
	a := NewArena(200)

	var refs []NodeRef
	for i := 0; i < 50; i++ {
		ref, ok := a.Alloc()
		if !ok {
			t.Fatalf("alloc %d: unexpected exhaustion", i)
		}
		refs = append(refs, ref)
	}

	for _, ref := range refs[:45] {
		a.Recycle(ref)
	}
	if got := a.freeQueueLen(); got < freeQueueThreshold {
		t.Fatalf("expected free queue >= %d, got %d", freeQueueThreshold, got)
	}

	reused, ok := a.Alloc()
	if !ok {
		t.Fatal("expected alloc to succeed from free queue")
	}
	if reused != refs[0] {
		t.Errorf("expected FIFO reuse of %d, got %d", refs[0], reused)
	}
}

func TestArenaReportsExhaustion(t *testing.T) {
	a := NewArena(150)
	ok := true
	for ok {
		_, ok = a.Alloc()
	}
	if !a.Exhausted() {
		t.Fatal("expected arena to report exhaustion")
	}
}

func TestArenaRecycleSubtreeWalksChildrenAndSiblings(t *testing.T) {
	a := NewArena(200)
	root, _ := a.Alloc()
	childA, _ := a.Alloc()
	childB, _ := a.Alloc()
	grandchild, _ := a.Alloc()

	a.Get(root).FirstChild = childA
	a.Get(childA).NextSibling = childB
	a.Get(childA).FirstChild = grandchild

	a.RecycleSubtree(root)
	if got := a.freeQueueLen(); got != 4 {
		t.Fatalf("expected 4 recycled nodes, got %d", got)
	}
}
