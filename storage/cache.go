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

import "sync"

/*
recordCache is a size limited cache of objects which are stored under a
record index. Once the cache is full the least recently requested entry is
replaced. A cache with a size of 0 stores nothing.
*/
type recordCache struct {
	cache      map[int64]*cacheEntry // Map of stored cacheEntry objects
	maxObjects int                   // Max number of objects which should be held in the cache
	firstentry *cacheEntry           // Pointer to first entry in cacheEntry linked list
	lastentry  *cacheEntry           // Pointer to last entry in cacheEntry linked list
	hits       int                   // Number of cache hits
	misses     int                   // Number of cache misses
}

/*
cacheEntry data structure
*/
type cacheEntry struct {
	location int64       // Record index of the entry
	object   interface{} // Object of the entry
	prev     *cacheEntry // Pointer to previous entry in cacheEntry linked list
	next     *cacheEntry // Pointer to next entry in cacheEntry linked list
}

/*
Pool for cache entries
*/
var entryPool = &sync.Pool{New: func() interface{} { return &cacheEntry{} }}

/*
newRecordCache creates a new cache which holds up to a given number of
objects.
*/
func newRecordCache(maxObjects int) *recordCache {
	if maxObjects < 0 {
		maxObjects = 0
	}
	return &recordCache{make(map[int64]*cacheEntry), maxObjects, nil, nil, 0, 0}
}

/*
get returns the object of a given record index.
*/
func (rc *recordCache) get(loc int64) (interface{}, bool) {
	entry, ok := rc.cache[loc]

	if !ok {
		rc.misses++
		return nil, false
	}

	rc.hits++
	rc.llTouchEntry(entry)

	return entry.object, true
}

/*
put stores an object under a given record index.
*/
func (rc *recordCache) put(loc int64, o interface{}) {

	if rc.maxObjects == 0 {
		return
	}

	if entry, ok := rc.cache[loc]; ok {
		entry.object = o
		rc.llTouchEntry(entry)
		return
	}

	var entry *cacheEntry

	// Get an entry from the pool or recycle the oldest entry if the cache
	// is full

	if len(rc.cache) >= rc.maxObjects {
		entry = rc.removeOldest()
	} else {
		entry = entryPool.Get().(*cacheEntry)
	}

	entry.location = loc
	entry.object = o

	rc.llAppendEntry(entry)
	rc.cache[loc] = entry
}

/*
size returns the number of stored objects.
*/
func (rc *recordCache) size() int {
	return len(rc.cache)
}

/*
clear removes all objects from the cache.
*/
func (rc *recordCache) clear() {
	for rc.firstentry != nil {
		entry := rc.removeOldest()
		entry.object = nil
		entryPool.Put(entry)
	}
}

/*
removeOldest removes the oldest entry from the cache and returns it.
*/
func (rc *recordCache) removeOldest() *cacheEntry {
	entry := rc.firstentry

	if entry == nil {
		return entryPool.Get().(*cacheEntry)
	}

	rc.llRemoveEntry(entry)
	delete(rc.cache, entry.location)

	return entry
}

/*
llTouchEntry puts an entry to the last position of the cacheEntry linked list.
Calling llTouchEntry on all requested items ensures that the oldest used
entry is at the beginning of the list.
*/
func (rc *recordCache) llTouchEntry(entry *cacheEntry) {
	if rc.lastentry == entry {
		return
	}

	rc.llRemoveEntry(entry)
	rc.llAppendEntry(entry)
}

/*
llAppendEntry appends a cacheEntry to the end of the cacheEntry linked list.
*/
func (rc *recordCache) llAppendEntry(entry *cacheEntry) {
	if rc.firstentry == nil {
		rc.firstentry = entry
		rc.lastentry = entry
		entry.prev = nil
	} else {
		rc.lastentry.next = entry
		entry.prev = rc.lastentry
		rc.lastentry = entry
	}
	entry.next = nil
}

/*
llRemoveEntry removes a cacheEntry from the cacheEntry linked list.
*/
func (rc *recordCache) llRemoveEntry(entry *cacheEntry) {
	if entry == rc.firstentry {
		rc.firstentry = entry.next
	}
	if rc.lastentry == entry {
		rc.lastentry = entry.prev
	}

	if entry.prev != nil {
		entry.prev.next = entry.next
	}
	if entry.next != nil {
		entry.next.prev = entry.prev
	}

	entry.prev = nil
	entry.next = nil
}
