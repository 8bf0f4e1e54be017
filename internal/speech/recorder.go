package speech

import (
	"bytes"
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// Recorder captures microphone audio as a 16-bit PCM WAV file.
type Recorder interface {
	Record(ctx context.Context, d time.Duration) ([]byte, error)
}

// CommandRecorder shells out to a capture tool such as arecord or sox.
// Args may contain "{seconds}" and "{file}" placeholders.
type CommandRecorder struct {
	Args []string
}

// Record runs the capture command for d and returns the WAV bytes.
func (r CommandRecorder) Record(ctx context.Context, d time.Duration) ([]byte, error) {
	if len(r.Args) == 0 {
		return nil, errors.New("no recorder command configured")
	}

	dir, err := os.MkdirTemp("", "soulsupport-speech-*")
	if err != nil {
		return nil, fmt.Errorf("create capture dir: %w", err)
	}
	defer os.RemoveAll(dir)
	file := filepath.Join(dir, "capture.wav")

	seconds := strconv.Itoa(max(1, int(d.Round(time.Second)/time.Second)))
	args := make([]string, len(r.Args))
	for i, a := range r.Args {
		a = strings.ReplaceAll(a, "{seconds}", seconds)
		args[i] = strings.ReplaceAll(a, "{file}", file)
	}

	// Leave the tool a grace period past the capture window to flush.
	ctx, cancel := context.WithTimeout(ctx, d+3*time.Second)
	defer cancel()

	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, args[0], args[1:]...)
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return nil, fmt.Errorf("%s: %w: %s", args[0], err, msg)
		}
		return nil, fmt.Errorf("%s: %w", args[0], err)
	}

	data, err := os.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("read capture: %w", err)
	}
	return data, nil
}

// Peak returns the largest absolute sample amplitude in a 16-bit PCM WAV.
func Peak(wav []byte) (int, error) {
	pcm, err := pcmData(wav)
	if err != nil {
		return 0, err
	}
	peak := 0
	for i := 0; i+1 < len(pcm); i += 2 {
		v := int(int16(binary.LittleEndian.Uint16(pcm[i:])))
		if v < 0 {
			v = -v
		}
		peak = max(peak, v)
	}
	return peak, nil
}

// pcmData returns the payload of the "data" chunk of a RIFF/WAVE file.
func pcmData(wav []byte) ([]byte, error) {
	if len(wav) < 12 || string(wav[0:4]) != "RIFF" || string(wav[8:12]) != "WAVE" {
		return nil, errors.New("not a WAV file")
	}
	for off := 12; off+8 <= len(wav); {
		id := string(wav[off : off+4])
		raw := binary.LittleEndian.Uint32(wav[off+4:])
		body := off + 8
		if id == "data" {
			// Tools streaming to a pipe leave the size as 0 or all ones.
			if raw == 0 || raw == math.MaxUint32 || body+int(raw) > len(wav) {
				return wav[body:], nil
			}
			return wav[body : body+int(raw)], nil
		}
		size := int(raw)
		off = body + size + size%2
	}
	return nil, errors.New("WAV file has no data chunk")
}
