package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"
)

type eventKind int

const (
	eventMove eventKind = iota
	eventKey
	eventWait
)

// scriptEvent is one line of an inspect event script:
//
//	move X Y
//	key KEY [TEXT]   TEXT answers the manual-search prompt
//	wait MS
type scriptEvent struct {
	kind eventKind
	x, y int
	key  string
	text string
	wait time.Duration
}

// eventSink receives script events.
type eventSink interface {
	PointerMove(x, y int)
	KeyDown(key string, repeat bool)
}

func parseEvent(line string) (scriptEvent, bool, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
		return scriptEvent{}, false, nil
	}
	switch strings.ToLower(fields[0]) {
	case "move":
		if len(fields) != 3 {
			return scriptEvent{}, false, fmt.Errorf("move needs X and Y")
		}
		x, err := strconv.Atoi(fields[1])
		if err != nil {
			return scriptEvent{}, false, fmt.Errorf("move x: %w", err)
		}
		y, err := strconv.Atoi(fields[2])
		if err != nil {
			return scriptEvent{}, false, fmt.Errorf("move y: %w", err)
		}
		return scriptEvent{kind: eventMove, x: x, y: y}, true, nil
	case "key":
		if len(fields) < 2 {
			return scriptEvent{}, false, fmt.Errorf("key needs a key name")
		}
		return scriptEvent{kind: eventKey, key: fields[1], text: strings.Join(fields[2:], " ")}, true, nil
	case "wait":
		if len(fields) != 2 {
			return scriptEvent{}, false, fmt.Errorf("wait needs milliseconds")
		}
		ms, err := strconv.Atoi(fields[1])
		if err != nil || ms < 0 {
			return scriptEvent{}, false, fmt.Errorf("wait: invalid milliseconds %q", fields[1])
		}
		return scriptEvent{kind: eventWait, wait: time.Duration(ms) * time.Millisecond}, true, nil
	default:
		return scriptEvent{}, false, fmt.Errorf("unknown event %q", fields[0])
	}
}

// runScript plays events as they are read, so a script may also be typed on
// stdin.
func runScript(ctx context.Context, r io.Reader, sink eventSink, host *pageHost) error {
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		ev, ok, err := parseEvent(scanner.Text())
		if err != nil {
			return fmt.Errorf("events line %d: %w", lineNo, err)
		}
		if !ok {
			continue
		}
		switch ev.kind {
		case eventMove:
			sink.PointerMove(ev.x, ev.y)
		case eventKey:
			if ev.text != "" {
				host.queueAnswer(ev.text)
			}
			sink.KeyDown(ev.key, false)
		case eventWait:
			timer := time.NewTimer(ev.wait)
			select {
			case <-ctx.Done():
				timer.Stop()
				return ctx.Err()
			case <-timer.C:
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read events: %w", err)
	}
	return nil
}
