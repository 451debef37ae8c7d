package vkdev

import (
	"log"

	vk "github.com/vulkan-go/vulkan"
)

// Submission is one unit of recorded work that can be issued to the hardware
// queue together with wait and signal semaphores. *CommandList is the
// canonical implementation.
type Submission interface {
	// Submit issues the work to queue. Called with the device's queue lock
	// held.
	Submit(queue vk.Queue, waitSync, signalSync vk.Semaphore) vk.Result
	// StatCounters returns the statistics accumulated while recording.
	StatCounters() StatCounters
}

// CompletionTracker monitors submitted work asynchronously. It detects when
// a submission has finished executing on the GPU and triggers the return of
// its resources to the device's free lists; this package only hands work
// over.
type CompletionTracker interface {
	Track(cmd Submission)
}

// Presenter issues the native present call for the current frame. The
// presentation layer owning the swapchain implements it.
type Presenter interface {
	PresentImage(wait vk.Semaphore) vk.Result
}

// SubmitCommandList hands one recorded command list to the graphics queue.
//
// Submissions from concurrent threads are serialized: whichever caller
// acquires the queue lock first has its work fully enqueued before the next
// submission proceeds. While the lock is held, the list's recording
// statistics are merged into the device totals and the submission counter is
// incremented.
//
// On success the list is handed to the completion tracker, which recycles it
// once the GPU is done. On failure the error is returned as a *ResultError
// and the list's resources stay un-recycled, since their state is of unknown
// validity; callers decide whether to destroy the list or tear down. A
// submission once accepted by the hardware queue cannot be revoked.
func (d *Device) SubmitCommandList(cmd Submission, waitSync, signalSync vk.Semaphore) error {
	var status vk.Result

	func() {
		// Queue submissions are not thread safe.
		d.submitMu.Lock()
		defer d.submitMu.Unlock()
		d.statMu.Lock()
		defer d.statMu.Unlock()

		stats := cmd.StatCounters()
		d.statCounters.Merge(&stats)
		d.statCounters.Add(StatQueueSubmitCount, 1)

		status = cmd.Submit(d.graphicsQueue.Handle, waitSync, signalSync)
	}()

	if isError(status) {
		err := newError(status)
		if cl, ok := cmd.(*CommandList); ok {
			log.Printf("vulkan: command list %s submission failed: %v", cl.ID(), err)
		} else {
			log.Printf("vulkan: command list submission failed: %v", err)
		}
		return err
	}

	d.tracker.Track(cmd)
	return nil
}

// PresentImage issues the present call under the same queue lock as
// SubmitCommandList, since presentation touches the same non-thread-safe
// queue state. The present counter is incremented only on success; a failed
// status such as vk.ErrorOutOfDate is returned unchanged inside a
// *ResultError so the caller can recreate its presentation target. Presents
// are never retried here.
func (d *Device) PresentImage(presenter Presenter, wait vk.Semaphore) error {
	d.submitMu.Lock()
	defer d.submitMu.Unlock()

	if status := presenter.PresentImage(wait); isError(status) {
		return newError(status)
	}

	d.statMu.Lock()
	d.statCounters.Add(StatQueuePresentCount, 1)
	d.statMu.Unlock()
	return nil
}
