package buffer

import (
	"fmt"
	"math"

	util "github.com/bietkhonhungvandi212/clock-db/internal/utils"
)

// clockSlot pairs a resident frame with its second-chance counter.
type clockSlot struct {
	useCount uint64
	frame    *Frame
}

// ClockSweep is a second-chance (CLOCK) replacement policy. Slots form a
// ring the hand walks over; every hit bumps the slot's use counter and every
// sweep step decrements it, so a page must be re-requested to survive a full
// rotation. A slot whose frame is still held outside the pool is never
// touched by the sweep.
type ClockSweep struct {
	clockHand int
	slots     []clockSlot
	pageToIdx map[util.PageID]int
	capacity  int
}

var _ PoolAlgorithm = (*ClockSweep)(nil)

func NewClockSweep(capacity int) *ClockSweep {
	if capacity <= 0 {
		panic(util.ErrInvalidPoolSize)
	}

	return &ClockSweep{
		clockHand: 0,
		slots:     make([]clockSlot, 0, capacity),
		pageToIdx: make(map[util.PageID]int, capacity),
		capacity:  capacity,
	}
}

func (cs *ClockSweep) Request(pageId util.PageID) *Frame {
	idx, exist := cs.pageToIdx[pageId]
	if !exist {
		return nil
	}

	slot := &cs.slots[idx]
	if slot.useCount < math.MaxUint64 {
		slot.useCount++
	}
	return slot.frame.Clone()
}

func (cs *ClockSweep) RequestWithHint(_ any, pageId util.PageID) *Frame {
	return cs.Request(pageId)
}

func (cs *ClockSweep) Push(pageId util.PageID, frame *Frame) (*Eviction, error) {
	if _, exist := cs.pageToIdx[pageId]; exist {
		panic(fmt.Sprintf("[clock] [Push] page %d already resident: %v", pageId, util.ErrPageAlreadyCached))
	}

	if len(cs.slots) < cs.capacity {
		idx := len(cs.slots)
		cs.slots = append(cs.slots, clockSlot{useCount: 0, frame: frame})
		cs.pageToIdx[pageId] = idx
		return nil, nil
	}

	startHand := cs.clockHand
	consecutiveFail := 0
	for {
		slot := &cs.slots[cs.clockHand]
		if slot.frame.IsExclusive() {
			if slot.useCount == 0 {
				break // victim found
			}
			slot.useCount--
			consecutiveFail = 0
		} else {
			// Still referenced outside the pool: not evictable and not
			// demoted either, a pinned page must not masquerade as cold.
			consecutiveFail++
			if consecutiveFail >= cs.capacity {
				// Every slot is pinned, so nothing was decremented on the
				// way here. Park the hand back where it started and leave
				// the pool untouched.
				cs.clockHand = startHand
				return nil, util.ErrPoolIsFull
			}
		}
		cs.clockHand = (cs.clockHand + 1) % cs.capacity
	}

	victimIdx := cs.clockHand
	oldFrame := cs.slots[victimIdx].frame
	oldPageId := oldFrame.PageID()

	delete(cs.pageToIdx, oldPageId)
	cs.slots[victimIdx] = clockSlot{useCount: 0, frame: frame}
	cs.pageToIdx[pageId] = victimIdx
	// The hand stays on the replaced slot. The newcomer enters with a zero
	// counter, so the next sweep reconsiders it first unless it gets
	// requested in between.

	return &Eviction{PageID: oldPageId, Frame: oldFrame}, nil
}

func (cs *ClockSweep) Len() int {
	return len(cs.slots)
}

func (cs *ClockSweep) Each(fn func(pageId util.PageID, frame *Frame) bool) {
	for i := range cs.slots {
		slot := &cs.slots[i]
		if !fn(slot.frame.PageID(), slot.frame) {
			return
		}
	}
}
