package axis

import (
	"sync"
	"testing"

	"github.com/curtisnewbie/timeaxis/adapter"
	"github.com/curtisnewbie/timeaxis/util/testutil"
)

func TestContextSlot(t *testing.T) {
	c := NewContext()
	testutil.TestTrue(t, c.Backend() == nil)

	a := adapter.New()
	c.UseBackend(a)
	testutil.TestTrue(t, c.Backend() == Backend(a))

	b := adapter.Initialize(c, map[string]string{"day": "D MMM"})
	testutil.TestTrue(t, c.Backend() == Backend(b))
	testutil.TestFalse(t, c.Backend() == Backend(a))
	testutil.TestEqual(t, "D MMM", c.Backend().Formats().Get(adapter.GranularityDay))
}

func TestContextConcurrentUse(t *testing.T) {
	c := NewContext()
	backends := []*adapter.Adapter{adapter.New(), adapter.New(), adapter.New()}

	var wg sync.WaitGroup
	for i := 0; i < 30; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if i%2 == 0 {
				c.UseBackend(backends[i%len(backends)])
				return
			}
			if b := c.Backend(); b != nil {
				b.Formats()
			}
		}(i)
	}
	wg.Wait()

	found := false
	for _, b := range backends {
		if c.Backend() == Backend(b) {
			found = true
		}
	}
	testutil.TestTrue(t, found)
}
