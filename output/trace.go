package output

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/tsinghua-fib-lab/intersim/entity"
	"github.com/vmihailenco/msgpack/v5"
)

// Frame 单步轨迹
type Frame struct {
	Episode    int32     `msgpack:"episode"`
	Step       int32     `msgpack:"step"`
	T          float64   `msgpack:"t"`
	Phase      string    `msgpack:"phase"`
	PhaseTimer float64   `msgpack:"phase_timer"`
	Waiting    []int32   `msgpack:"waiting"`  // 按方向：EAST, SOUTH
	RedTime    []float64 `msgpack:"red_time"` // 按方向：EAST, SOUTH
	Vehicles   int32     `msgpack:"vehicles"` // 在途车辆数
}

// NewFrame 由观测构造轨迹帧
func NewFrame(episode, step int32, obs entity.Observation, vehicles int) Frame {
	return Frame{
		Episode:    episode,
		Step:       step,
		T:          obs.T,
		Phase:      obs.Phase.String(),
		PhaseTimer: obs.PhaseTimer,
		Waiting:    obs.Waiting[:],
		RedTime:    obs.RedTime[:],
		Vehicles:   int32(vehicles),
	}
}

// TraceWriter 以msgpack流的形式逐帧写出轨迹
type TraceWriter struct {
	buf    *bufio.Writer
	closer io.Closer
	enc    *msgpack.Encoder
	frames int
}

// NewTraceWriter 在w上创建轨迹输出，w实现io.Closer时Close会一并关闭
func NewTraceWriter(w io.Writer) *TraceWriter {
	buf := bufio.NewWriter(w)
	t := &TraceWriter{buf: buf, enc: msgpack.NewEncoder(buf)}
	if c, ok := w.(io.Closer); ok {
		t.closer = c
	}
	return t
}

// CreateTraceFile 创建轨迹文件（已存在则覆盖）
func CreateTraceFile(path string) (*TraceWriter, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create trace file: %w", err)
	}
	log.Infof("write step trace to %s", path)
	return NewTraceWriter(f), nil
}

// Write 写出一帧
func (t *TraceWriter) Write(f Frame) error {
	if err := t.enc.Encode(&f); err != nil {
		return fmt.Errorf("encode frame %d/%d: %w", f.Episode, f.Step, err)
	}
	t.frames++
	return nil
}

// Frames 已写出的帧数
func (t *TraceWriter) Frames() int {
	return t.frames
}

// Close 刷新缓冲并关闭底层输出
func (t *TraceWriter) Close() error {
	err := t.buf.Flush()
	if t.closer != nil {
		err = errors.Join(err, t.closer.Close())
	}
	return err
}

// ReadTrace 读出轨迹流中的全部帧
func ReadTrace(r io.Reader) ([]Frame, error) {
	dec := msgpack.NewDecoder(bufio.NewReader(r))
	frames := make([]Frame, 0)
	for {
		var f Frame
		if err := dec.Decode(&f); err != nil {
			if errors.Is(err, io.EOF) {
				return frames, nil
			}
			return frames, fmt.Errorf("decode frame %d: %w", len(frames), err)
		}
		frames = append(frames, f)
	}
}
