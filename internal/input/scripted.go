package input

import "github.com/hajimehoshi/ebiten/v2"

type scriptedFrame struct {
	keys  []ebiten.Key
	click bool
}

// Scripted replays queued input, one queued frame per Tick. Frames with
// nothing queued have no input.
type Scripted struct {
	queue   []scriptedFrame
	current scriptedFrame
	x, y    int
}

func NewScripted() *Scripted {
	return &Scripted{}
}

// Press queues a frame in which keys are pressed.
func (s *Scripted) Press(keys ...ebiten.Key) {
	s.queue = append(s.queue, scriptedFrame{keys: keys})
}

// Idle queues n frames without input.
func (s *Scripted) Idle(n int) {
	for range n {
		s.queue = append(s.queue, scriptedFrame{})
	}
}

// Click queues a frame with a left click at x, y.
func (s *Scripted) Click(x, y int) {
	s.MoveCursor(x, y)
	s.queue = append(s.queue, scriptedFrame{click: true})
}

// MoveCursor places the cursor immediately.
func (s *Scripted) MoveCursor(x, y int) {
	s.x, s.y = x, y
}

// Pending returns the number of queued frames.
func (s *Scripted) Pending() int {
	return len(s.queue)
}

func (s *Scripted) Tick() {
	if len(s.queue) == 0 {
		s.current = scriptedFrame{}
		return
	}
	s.current = s.queue[0]
	s.queue = s.queue[1:]
}

func (s *Scripted) KeyJustPressed(key ebiten.Key) bool {
	for _, k := range s.current.keys {
		if k == key {
			return true
		}
	}
	return false
}

func (s *Scripted) CursorPosition() (int, int) {
	return s.x, s.y
}

func (s *Scripted) MouseJustPressed() bool {
	return s.current.click
}
