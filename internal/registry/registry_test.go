package registry

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistrySearchScenario(t *testing.T) {
	r := New()
	n, err := r.Load("A:/ru\nB:/ru/msk")
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	assert.Equal(t, []string{"A", "B"}, r.Search("/ru/msk"))
	assert.Equal(t, []string{"A", "B"}, r.Search("/ru"))
	assert.Equal(t, []string{"A"}, r.Search("/ru/spb"))
	assert.Equal(t, []string{}, r.Search("/us"))
}

func TestRegistrySearchOncePerPlatform(t *testing.T) {
	r := New()
	_, err := r.Load("A:/ru,/ru/msk,/ru/msk/center\nA:/ru/msk\nC:/us")
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "A"}, r.Search("/ru/msk"))
}

func TestRegistrySearchBlank(t *testing.T) {
	r := New()
	_, err := r.Load("A:/ru")
	require.NoError(t, err)
	got := r.Search("   ")
	assert.NotNil(t, got)
	assert.Empty(t, got)
	assert.Empty(t, r.Search("/"))
}

func TestRegistryLoadSkipsMalformed(t *testing.T) {
	r := New()
	n, err := r.Load("A:/ru\nBadLine\nB:/ru/msk,/ru/spb")
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, 2, r.Len())
}

func TestRegistryLoadEmptyKeepsState(t *testing.T) {
	r := New()
	_, err := r.Load("A:/ru")
	require.NoError(t, err)
	gen := r.Generation()

	for _, raw := range []string{"", "   "} {
		_, err := r.Load(raw)
		require.Error(t, err)
		assert.True(t, IsValidation(err))
	}
	assert.Equal(t, []Platform{{Name: "A", Locations: []string{"/ru"}}}, r.All())
	assert.Equal(t, gen, r.Generation())
}

func TestRegistryLoadReplaces(t *testing.T) {
	r := New()
	_, err := r.Load("A:/ru\nB:/ru/msk")
	require.NoError(t, err)
	_, err = r.Load("C:/us")
	require.NoError(t, err)

	want, err := Parse("C:/us")
	require.NoError(t, err)
	assert.Equal(t, want, r.All())
	assert.Empty(t, r.Search("/ru"))
}

func TestRegistryClearIdempotent(t *testing.T) {
	r := New()
	_, err := r.Load("A:/ru")
	require.NoError(t, err)
	r.Clear()
	assert.Empty(t, r.All())
	r.Clear()
	assert.Empty(t, r.All())
	assert.Equal(t, 0, r.Len())
}

func TestRegistryAllIsCopy(t *testing.T) {
	r := New()
	_, err := r.Load("A:/ru,/ru/msk")
	require.NoError(t, err)

	got := r.All()
	got[0].Name = "changed"
	got[0].Locations[0] = "/us"

	assert.Equal(t, []Platform{{Name: "A", Locations: []string{"/ru", "/ru/msk"}}}, r.All())
}

func TestRegistryGeneration(t *testing.T) {
	r := New()
	_, g0 := r.SearchAt("/ru")
	_, err := r.Load("A:/ru")
	require.NoError(t, err)
	names, g1 := r.SearchAt("/ru")
	assert.Equal(t, []string{"A"}, names)
	assert.Greater(t, g1, g0)
	r.Clear()
	assert.Greater(t, r.Generation(), g1)
}

// 并发加载与查询时，读方只能看到某一次完整加载的快照
func TestRegistryConcurrentSnapshots(t *testing.T) {
	r := New()
	const size = 50
	files := make([]string, 4)
	for i := range files {
		var s string
		for j := 0; j < size; j++ {
			s += fmt.Sprintf("P%d:/ru/r%d\n", i, j)
		}
		files[i] = s
	}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for k := 0; k < 50; k++ {
				if k%10 == 9 {
					r.Clear()
					continue
				}
				_, _ = r.Load(files[(i+k)%len(files)])
			}
		}(i)
	}
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for k := 0; k < 100; k++ {
				names := r.Search("/ru")
				if len(names) != 0 && len(names) != size {
					t.Errorf("partial snapshot: %d names", len(names))
					return
				}
				for _, n := range names {
					if n != names[0] {
						t.Errorf("mixed snapshot: %q and %q", names[0], n)
						return
					}
				}
			}
		}()
	}
	wg.Wait()
}

func TestRegistryLoadReport(t *testing.T) {
	r := New()
	rep, err := r.LoadReport("A:/ru\nBadLine\nB:/ru/msk")
	require.NoError(t, err)
	assert.Len(t, rep.Platforms, 2)
	require.Len(t, rep.Skipped, 1)
	assert.Equal(t, 2, rep.Skipped[0].Line)

	rep.Platforms[0].Locations[0] = "/us"
	assert.Equal(t, []string{"A", "B"}, r.Search("/ru/msk"))
}

func TestRegistrySnapshotKeyUniqueAcrossInstances(t *testing.T) {
	a, b := New(), New()
	_, err := a.Load("Old:/ru")
	require.NoError(t, err)
	_, err = b.Load("New:/us")
	require.NoError(t, err)
	assert.Equal(t, a.Generation(), b.Generation())
	assert.NotEqual(t, a.SnapshotKey(), b.SnapshotKey())

	names, key := b.SearchSnapshot("/ru")
	assert.Empty(t, names)
	assert.Equal(t, b.SnapshotKey(), key)

	before := a.SnapshotKey()
	a.Clear()
	assert.NotEqual(t, before, a.SnapshotKey())
}
