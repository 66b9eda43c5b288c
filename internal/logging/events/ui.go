package events

import (
	"github.com/atomicstack/popup-launcher/internal/logging"
	"go.uber.org/zap"
)

type UITracer struct {
	t *logging.Tracer
}

type FilterTracer struct {
	t *logging.Tracer
}

type ActionTracer struct {
	t *logging.Tracer
}

type CommandTracer struct {
	t *logging.Tracer
}

type DispatchTracer struct {
	t *logging.Tracer
}

func (u UITracer) MenuEnter(levelID, itemID, label, filter string) {
	u.t.Trace("menu.enter",
		zap.String("level", levelID),
		zap.String("item", itemID),
		zap.String("label", label),
		zap.String("filter", filter),
	)
}

func (u UITracer) MenuCursor(levelID string, cursor int) {
	u.t.Trace("menu.cursor", zap.String("level", levelID), zap.Int("cursor", cursor))
}

func (u UITracer) MenuBack(from string) {
	u.t.Trace("menu.back", zap.String("from", from))
}

func (u UITracer) Dismiss(levelID, action string) {
	u.t.Trace("menu.dismiss", zap.String("level", levelID), zap.String("action", action))
}

func (a ActionTracer) Error(err error) {
	if err == nil {
		return
	}
	a.t.Trace("action.error", zap.String("error", err.Error()))
}

func (a ActionTracer) Success(info string) {
	a.t.Trace("action.success", zap.String("info", info))
}

func (f FilterTracer) Cleared(levelID string) {
	f.t.Trace("filter.clear", zap.String("level", levelID))
}

func (f FilterTracer) WordBackspace(levelID, filter string) {
	f.t.Trace("filter.word-backspace", zap.String("level", levelID), zap.String("filter", filter))
}

func (f FilterTracer) Cursor(levelID string, pos int) {
	f.t.Trace("filter.cursor", zap.String("level", levelID), zap.Int("cursor", pos))
}

func (f FilterTracer) CursorWord(levelID string, pos int) {
	f.t.Trace("filter.cursor-word", zap.String("level", levelID), zap.Int("cursor", pos))
}

func (f FilterTracer) Append(levelID, filter string) {
	f.t.Trace("filter.append", zap.String("level", levelID), zap.String("filter", filter))
}

func (f FilterTracer) Backspace(levelID, filter string) {
	f.t.Trace("filter.backspace", zap.String("level", levelID), zap.String("filter", filter))
}

func (c CommandTracer) Queue(id, label string) {
	c.t.Trace("command.queue", zap.String("id", id), zap.String("label", label))
}

func (c CommandTracer) Skip(id, label string) {
	c.t.Trace("command.skip", zap.String("id", id), zap.String("label", label))
}

func (c CommandTracer) Result(id, label, msgType string) {
	c.t.Trace("command.result", zap.String("id", id), zap.String("label", label), zap.String("msg", msgType))
}

func (d DispatchTracer) Spawn(command string, pid int) {
	d.t.Trace("dispatch.spawn", zap.String("command", command), zap.Int("pid", pid))
}

func (d DispatchTracer) Exit(command string, pid int, err error) {
	fields := []zap.Field{zap.String("command", command), zap.Int("pid", pid)}
	if err != nil {
		fields = append(fields, zap.String("error", err.Error()))
	}
	d.t.Trace("dispatch.exit", fields...)
}
