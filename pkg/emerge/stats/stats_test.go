package stats

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAddIsFirstWriteWins(t *testing.T) {
	s := New()
	s.Add(ScannedFiles, 10)
	s.Add(ScannedFiles, 99)

	v, ok := s.Get(ScannedFiles)
	assert.True(t, ok)
	assert.Equal(t, 10, v)
}

func TestUpdateOverwrites(t *testing.T) {
	s := New()
	s.Update(TotalRuntime, "00:00:01 + 0ms")
	s.Update(TotalRuntime, "00:00:02 + 0ms")

	v, _ := s.Get(TotalRuntime)
	assert.Equal(t, "00:00:02 + 0ms", v)
}

func TestIncrementConcurrent(t *testing.T) {
	s := New()
	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.Increment(ParsingHits)
		}()
	}
	wg.Wait()

	v, _ := s.Get(ParsingHits)
	assert.Equal(t, 100, v)
}

func TestFormatDuration(t *testing.T) {
	d := 1*time.Hour + 2*time.Minute + 3*time.Second + 456*time.Millisecond
	assert.Equal(t, "01:02:03 + 456ms", FormatDuration(d))
}

func TestSnapshotUsesKeyNames(t *testing.T) {
	s := New()
	s.Update(ScannedFiles, 5)
	snap := s.Snapshot()
	assert.Equal(t, 5, snap["scanned-files"])
}
