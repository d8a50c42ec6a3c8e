package command

// Queue holds commands until the tick they are scheduled for
type Queue struct {
	pending    map[uint64][]Command // tick -> commands
	inputDelay uint64
}

// NewQueue creates a queue that runs local commands inputDelay ticks after
// they are submitted. Zero runs them on the next tick.
func NewQueue(inputDelay uint64) *Queue {
	return &Queue{
		pending:    make(map[uint64][]Command),
		inputDelay: inputDelay,
	}
}

// Schedule stamps cmd with the tick it will run on and queues it
func (q *Queue) Schedule(currentTick uint64, cmd Command) Command {
	cmd.Tick = currentTick + q.inputDelay
	q.pending[cmd.Tick] = append(q.pending[cmd.Tick], cmd)
	return cmd
}

// Push queues a command on the tick it already carries, as replays do
func (q *Queue) Push(cmd Command) {
	q.pending[cmd.Tick] = append(q.pending[cmd.Tick], cmd)
}

// Take removes and returns the commands for a tick in submission order
func (q *Queue) Take(tick uint64) []Command {
	cmds := q.pending[tick]
	delete(q.pending, tick)
	return cmds
}

// Len returns the number of queued commands
func (q *Queue) Len() int {
	n := 0
	for _, cmds := range q.pending {
		n += len(cmds)
	}
	return n
}

// Clear drops everything queued
func (q *Queue) Clear() {
	clear(q.pending)
}
