package main

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"
)

// player owns the audio device and streams from an io.Reader.
type player struct {
	ctx     *oto.Context
	player  *oto.Player
	started bool
	mu      sync.Mutex
}

func newPlayer(sampleRate int, buffer time.Duration) (*player, error) {
	op := &oto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: 2,
		Format:       oto.FormatFloat32LE,
		BufferSize:   buffer,
	}

	ctx, ready, err := oto.NewContext(op)
	if err != nil {
		return nil, fmt.Errorf("audio device: %w", err)
	}
	<-ready

	return &player{ctx: ctx}, nil
}

func (p *player) Start(src io.Reader) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.started {
		return
	}
	p.player = p.ctx.NewPlayer(src)
	p.player.Play()
	p.started = true
}

func (p *player) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.player == nil {
		return nil
	}
	err := p.player.Close()
	p.player = nil
	p.started = false
	return err
}
