/*
 * KmerGraph
 *
 * Copyright 2021 Matthias Ladkau. All rights reserved.
 *
 * This Source Code Form is subject to the terms of the Mozilla Public
 * License, v. 2.0. If a copy of the MPL was not distributed with this
 * file, You can obtain one at http://mozilla.org/MPL/2.0/.
 */

package storage

import (
	"fmt"
	"testing"
)

func cacheOrder(rc *recordCache) string {
	var ret []int64

	for e := rc.firstentry; e != nil; e = e.next {
		ret = append(ret, e.location)
	}

	return fmt.Sprint(ret)
}

func TestRecordCache(t *testing.T) {

	rc := newRecordCache(3)

	rc.put(1, "a")
	rc.put(2, "b")
	rc.put(3, "c")

	if res := cacheOrder(rc); res != "[1 2 3]" {
		t.Error("Unexpected result:", res)
		return
	}

	// Touching an entry moves it to the end of the list

	if o, ok := rc.get(1); !ok || o != "a" {
		t.Error("Unexpected result:", o, ok)
		return
	}

	if res := cacheOrder(rc); res != "[2 3 1]" {
		t.Error("Unexpected result:", res)
		return
	}

	// Adding a new entry forgets the least recently requested one

	rc.put(4, "d")

	if res := cacheOrder(rc); res != "[3 1 4]" || rc.size() != 3 {
		t.Error("Unexpected result:", res)
		return
	}

	if _, ok := rc.get(2); ok {
		t.Error("Entry should have been removed")
		return
	}

	// Updating an existing entry

	rc.put(3, "x")

	if o, ok := rc.get(3); !ok || o != "x" {
		t.Error("Unexpected result:", o, ok)
		return
	}

	if res := cacheOrder(rc); res != "[1 4 3]" {
		t.Error("Unexpected result:", res)
		return
	}

	if rc.hits != 2 || rc.misses != 1 {
		t.Error("Unexpected statistics:", rc.hits, rc.misses)
		return
	}

	// Remove an entry from the middle of the list

	rc.llRemoveEntry(rc.cache[4])
	delete(rc.cache, 4)

	if res := cacheOrder(rc); res != "[1 3]" || rc.lastentry.location != 3 ||
		rc.lastentry.prev.location != 1 {
		t.Error("Unexpected result:", res)
		return
	}

	rc.clear()

	if res := cacheOrder(rc); res != "[]" || rc.size() != 0 || rc.lastentry != nil {
		t.Error("Unexpected result:", res)
		return
	}
}

func TestDisabledRecordCache(t *testing.T) {

	for _, size := range []int{0, -1} {
		rc := newRecordCache(size)

		rc.put(1, "a")

		if _, ok := rc.get(1); ok || rc.size() != 0 {
			t.Error("Disabled cache should not store anything")
			return
		}
	}

	rc := newRecordCache(1)

	rc.put(1, "a")
	rc.put(2, "b")

	if _, ok := rc.get(1); ok {
		t.Error("Entry should have been removed")
		return
	}

	if o, ok := rc.get(2); !ok || o != "b" || rc.size() != 1 {
		t.Error("Unexpected result:", o, ok)
		return
	}
}
