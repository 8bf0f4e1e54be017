package speech

import (
	"bytes"
	"context"
	"encoding/binary"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/soulsupport/internal/llm"
	"github.com/abhisek/soulsupport/internal/store"
)

// makeWAV builds a mono 16 kHz PCM WAV holding samples.
func makeWAV(samples ...int16) []byte {
	var pcm bytes.Buffer
	for _, s := range samples {
		binary.Write(&pcm, binary.LittleEndian, s)
	}

	var b bytes.Buffer
	b.WriteString("RIFF")
	binary.Write(&b, binary.LittleEndian, uint32(36+pcm.Len()))
	b.WriteString("WAVE")
	b.WriteString("fmt ")
	binary.Write(&b, binary.LittleEndian, uint32(16))
	binary.Write(&b, binary.LittleEndian, uint16(1))     // PCM
	binary.Write(&b, binary.LittleEndian, uint16(1))     // mono
	binary.Write(&b, binary.LittleEndian, uint32(16000)) // sample rate
	binary.Write(&b, binary.LittleEndian, uint32(32000)) // byte rate
	binary.Write(&b, binary.LittleEndian, uint16(2))     // block align
	binary.Write(&b, binary.LittleEndian, uint16(16))    // bits
	b.WriteString("data")
	binary.Write(&b, binary.LittleEndian, uint32(pcm.Len()))
	b.Write(pcm.Bytes())
	return b.Bytes()
}

type fakeRecorder struct {
	audio []byte
	err   error
}

func (f fakeRecorder) Record(context.Context, time.Duration) ([]byte, error) {
	return f.audio, f.err
}

func TestMessage(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{ErrNoSpeech, "⏳ No speech detected"},
		{ErrUnintelligible, "🔇 Could not understand audio"},
		{&ServiceError{Provider: "openai", Err: errors.New("quota exceeded")}, "🚫 Speech service error: quota exceeded"},
		{errors.New("arecord: not found"), "⚠️ Error: arecord: not found"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Message(tt.err))
	}
}

func TestOutcome(t *testing.T) {
	assert.Equal(t, "ok", Outcome(nil))
	assert.Equal(t, "no-speech", Outcome(ErrNoSpeech))
	assert.Equal(t, "unintelligible", Outcome(ErrUnintelligible))
	assert.Equal(t, "service-error", Outcome(&ServiceError{Err: errors.New("x")}))
	assert.Equal(t, "error", Outcome(errors.New("x")))
}

func TestPeak(t *testing.T) {
	peak, err := Peak(makeWAV(10, -3000, 200))
	require.NoError(t, err)
	assert.Equal(t, 3000, peak)

	peak, err = Peak(makeWAV())
	require.NoError(t, err)
	assert.Equal(t, 0, peak)

	_, err = Peak([]byte("not audio at all"))
	assert.Error(t, err)
}

func TestRecognize(t *testing.T) {
	loud := makeWAV(0, 4000, -4000)
	quiet := makeWAV(0, 20, -20)

	tests := []struct {
		name     string
		recorder Recorder
		response llm.MockResponse
		wantText string
		wantErr  func(error) bool
	}{
		{
			name:     "transcribed",
			recorder: fakeRecorder{audio: loud},
			response: llm.MockResponse{Text: "I feel stressed"},
			wantText: "I feel stressed",
		},
		{
			name:     "silence",
			recorder: fakeRecorder{audio: quiet},
			wantErr:  func(err error) bool { return errors.Is(err, ErrNoSpeech) },
		},
		{
			name:     "capture timed out",
			recorder: fakeRecorder{err: context.DeadlineExceeded},
			wantErr:  func(err error) bool { return errors.Is(err, ErrNoSpeech) },
		},
		{
			name:     "empty transcript",
			recorder: fakeRecorder{audio: loud},
			response: llm.MockResponse{Text: ""},
			wantErr:  func(err error) bool { return errors.Is(err, ErrUnintelligible) },
		},
		{
			name:     "service failure",
			recorder: fakeRecorder{audio: loud},
			response: llm.MockResponse{Err: &llm.ErrRateLimit{Err: errors.New("429")}},
			wantErr: func(err error) bool {
				var svc *ServiceError
				var rl *llm.ErrRateLimit
				return errors.As(err, &svc) && errors.As(err, &rl)
			},
		},
		{
			name:     "recorder missing",
			recorder: fakeRecorder{err: errors.New("exec: arecord not found")},
			wantErr: func(err error) bool {
				var svc *ServiceError
				return !errors.As(err, &svc) && !errors.Is(err, ErrNoSpeech)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := llm.NewMockProvider(tt.response)
			r := NewRecognizer(tt.recorder, mock, "mock", 5*time.Second, 500)

			text, err := r.Recognize(context.Background())
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.True(t, tt.wantErr(err), "unexpected error %v", err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantText, text)
		})
	}
}

func TestListenerDeliversResultAndLogsEvent(t *testing.T) {
	s, err := store.Open(filepath.Join(t.TempDir(), "speech.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	mock := llm.NewMockProvider(llm.MockResponse{Text: "hello"})
	r := NewRecognizer(fakeRecorder{audio: makeWAV(9000)}, mock, "mock", time.Second, 500)
	l := NewListener(r, s.EventRepo())

	cmd, err := l.Start(context.Background())
	require.NoError(t, err)

	msg, ok := cmd().(ResultMsg)
	require.True(t, ok)
	assert.Equal(t, "hello", msg.Text)
	assert.NoError(t, msg.Err)
	assert.False(t, l.Listening())

	var n int
	require.NoError(t, s.DB().QueryRow(`SELECT COUNT(*) FROM speech_events WHERE outcome = 'ok'`).Scan(&n))
	assert.Equal(t, 1, n)
}

type blockingRecorder struct{ release chan struct{} }

func (b blockingRecorder) Record(ctx context.Context, _ time.Duration) ([]byte, error) {
	<-b.release
	return nil, ErrNoSpeech
}

func TestListenerRejectsConcurrentStart(t *testing.T) {
	rec := blockingRecorder{release: make(chan struct{})}
	l := NewListener(NewRecognizer(rec, nil, "mock", time.Second, 500), nil)

	cmd, err := l.Start(context.Background())
	require.NoError(t, err)
	assert.True(t, l.Listening())

	_, err = l.Start(context.Background())
	assert.ErrorIs(t, err, ErrBusy)

	close(rec.release)
	msg := cmd().(ResultMsg)
	assert.ErrorIs(t, msg.Err, ErrNoSpeech)
}

func TestCommandRecorder(t *testing.T) {
	src := filepath.Join(t.TempDir(), "fixture.wav")
	want := makeWAV(1, 2, 3)
	require.NoError(t, os.WriteFile(src, want, 0o600))

	rec := CommandRecorder{Args: []string{"sh", "-c", `test "$1" = 2 && cp "$2" "$0"`, "{file}", "{seconds}", src}}
	got, err := rec.Record(context.Background(), 2*time.Second)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestCommandRecorderFailure(t *testing.T) {
	rec := CommandRecorder{Args: []string{"sh", "-c", "echo no device >&2; exit 1"}}
	_, err := rec.Record(context.Background(), time.Second)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no device")

	_, err = CommandRecorder{}.Record(context.Background(), time.Second)
	assert.Error(t, err)
}
