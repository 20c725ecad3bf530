package util

import (
	"math/rand"
	"os"
	"strconv"
	"sync"
	"time"
)

// A random multiplier which you should use when writing random tests:
// multiply it by the number of iterations to scale your tests (for nightly builds).
var RANDOM_MULTIPLIER = func() int {
	n, err := strconv.Atoi(or(os.Getenv("tests_multiplier"), "1"))
	if err != nil || n < 1 {
		return 1
	}
	return n
}()

// Whether or not Nightly tests should run
var TEST_NIGHTLY = ("true" == or(os.Getenv("tests_nightly"), "false"))

// Seed of Random(); set tests_seed to replay a run.
var SEED = func() int64 {
	if seed, err := strconv.ParseInt(os.Getenv("tests_seed"), 10, 64); err == nil {
		return seed
	}
	return time.Now().UTC().UnixNano()
}()

func or(a, b string) string {
	if len(a) > 0 {
		return a
	}
	return b
}

var (
	randomLock sync.Mutex
	random     = rand.New(rand.NewSource(SEED))
)

/*
Returns a Random derived from SEED. Each call gives a new source, so
the result can be used from a single goroutine without locking.
*/
func Random() *rand.Rand {
	randomLock.Lock()
	defer randomLock.Unlock()
	return rand.New(rand.NewSource(random.Int63()))
}

/*
Returns a number of at least i

The actual number returned will be influenced by whether TEST_NIGHTLY
is active and RANDOM_MULTIPLIER, but also with some random fudge.
*/
func atLeastBy(random *rand.Rand, i int) int {
	min := i * RANDOM_MULTIPLIER
	if TEST_NIGHTLY {
		min = 2 * min
	}
	max := min + min/2
	return NextInt(random, min, max)
}

func AtLeast(i int) int {
	return atLeastBy(Random(), i)
}
