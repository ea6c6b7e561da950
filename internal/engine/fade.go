package engine

import "github.com/kamstrup/intmap"

// FadeState is the phase of the current fade batch.
type FadeState uint8

const (
	FadeIdle FadeState = iota
	FadeAccumulating
	FadeComplete
)

func (s FadeState) String() string {
	switch s {
	case FadeAccumulating:
		return "accumulating"
	case FadeComplete:
		return "complete"
	default:
		return "idle"
	}
}

// Fade animates the fading registry. Progress is measured in the same unit
// as the block size; a batch completes when progress reaches it.
type Fade struct {
	start     float64
	rate      float64 // progress units per second
	blockSize float64
	progress  float64
}

// NewFade creates a fade controller.
func NewFade(start, rate, blockSize float64) *Fade {
	return &Fade{start: start, rate: rate, blockSize: blockSize, progress: start}
}

// Progress returns the current fade width.
func (f *Fade) Progress() float64 {
	return f.progress
}

// Fraction returns progress as a value in [0, 1].
func (f *Fade) Fraction() float64 {
	if f.blockSize <= 0 {
		return 1
	}
	return min(f.progress/f.blockSize, 1)
}

// State reports the phase for a board.
func (f *Fade) State(b *Board) FadeState {
	switch {
	case !b.HasFading():
		return FadeIdle
	case f.progress >= f.blockSize:
		return FadeComplete
	default:
		return FadeAccumulating
	}
}

// Removal describes one completed fade batch.
type Removal struct {
	Removed  []Block
	Detached int
}

// Advance runs one update of the fade gate. A complete batch is removed
// first; otherwise progress grows by rate per second of elapsedMs. The
// returned Removal is nil unless tiles were removed.
func (f *Fade) Advance(b *Board, elapsedMs int) *Removal {
	if !b.HasFading() {
		return nil
	}
	if f.progress >= f.blockSize {
		f.progress = f.start
		removed := b.removeAll(RegistryFading)
		return &Removal{Removed: removed, Detached: b.detachAboveVacated(removed)}
	}
	f.progress += f.rate * float64(elapsedMs) / 1000
	return nil
}

// Reset returns the controller to its starting width.
func (f *Fade) Reset() {
	f.progress = f.start
}

// detachAboveVacated releases every fixated block above the lowest removed
// cell of each affected column into the falling registry. It returns the
// number of detached blocks.
func (b *Board) detachAboveVacated(removed []Block) int {
	lowest := intmap.New[int, int](b.width)
	var columns []int
	for _, blk := range removed {
		row, seen := lowest.Get(blk.Column)
		if !seen {
			columns = append(columns, blk.Column)
		}
		if !seen || blk.Row > row {
			lowest.Put(blk.Column, blk.Row)
		}
	}

	detached := 0
	for _, col := range columns {
		row, _ := lowest.Get(col)
		for _, blk := range b.FindFixatedAbove(C(col, row)) {
			if b.migrate(blk.Coord(), RegistryFixated, RegistryFalling) {
				detached++
			}
		}
	}
	return detached
}
