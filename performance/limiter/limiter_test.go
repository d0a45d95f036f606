// This file is part of m88sound.
//
// m88sound is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// m88sound is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with m88sound.  If not, see <https://www.gnu.org/licenses/>.

package limiter_test

import (
	"testing"
	"time"

	"github.com/pc88go/m88sound/performance/limiter"
	"github.com/pc88go/m88sound/test"
)

func TestLimiter(t *testing.T) {
	_, err := limiter.NewFPSLimiter(0)
	test.ExpectFailure(t, err)

	lim, err := limiter.NewFPSLimiter(100)
	test.DemandSuccess(t, err)
	defer lim.Stop()

	test.ExpectEquality(t, lim.Limit(), 100)
	test.ExpectEquality(t, lim.Period(), 10*time.Millisecond)

	start := time.Now()
	for i := 0; i < 11; i++ {
		test.ExpectSuccess(t, lim.Wait())
	}

	// the first tick is immediate so eleven ticks take ten periods
	test.ExpectSuccess(t, time.Since(start) >= 95*time.Millisecond)

	test.ExpectFailure(t, lim.SetLimit(-1))
	test.ExpectEquality(t, lim.Limit(), 100)
}

func TestLimiterStop(t *testing.T) {
	lim, err := limiter.NewFPSLimiter(1)
	test.DemandSuccess(t, err)

	// consume the immediate tick. the next one is a second away
	test.ExpectSuccess(t, lim.Wait())

	go func() {
		time.Sleep(10 * time.Millisecond)
		lim.Stop()
	}()

	start := time.Now()
	test.ExpectFailure(t, lim.Wait())
	test.ExpectSuccess(t, time.Since(start) < 500*time.Millisecond)

	lim.Stop()
	test.ExpectFailure(t, lim.HasWaited())
}
