// SPDX-License-Identifier: GPL-2.0-or-later

package samples

import (
	"testing"
)

func TestTokens(t *testing.T) {
	for _, n := range Names() {
		ts, err := Tokens(n)
		if err != nil {
			t.Errorf("%s: %v", n, err)
			continue
		}
		if len(ts) == 0 {
			t.Errorf("%s is empty", n)
		}
	}
	if _, err := Tokens("nope"); err == nil {
		t.Errorf("unknown sample returned no error")
	}
}
