package input

import (
	"github.com/kataras/golog"
)

// LogActuator logs actuations instead of performing them. Used for --dry-run
// and on platforms without native injection, so the pipeline stays fully
// observable.
type LogActuator struct {
	log *golog.Logger
}

// NewLogActuator creates a logging actuator.
func NewLogActuator() *LogActuator {
	return &LogActuator{log: golog.Child("[input]")}
}

func (a *LogActuator) MoveRelative(dx, dy int) error {
	a.log.Debugf("move dx=%d dy=%d", dx, dy)
	return nil
}

func (a *LogActuator) Click(button Button) error {
	a.log.Infof("click button=%d", button)
	return nil
}

func (a *LogActuator) KeyTap(ch rune) error {
	a.log.Infof("key %q", ch)
	return nil
}

func (a *LogActuator) Scroll(lines int) error {
	a.log.Debugf("scroll lines=%d", lines)
	return nil
}
