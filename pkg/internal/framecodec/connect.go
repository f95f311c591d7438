package framecodec

import "github.com/joeydtaylor/eegcodec/pkg/internal/types"

// ConnectLogger registers loggers for codec events.
func (c *Codec) ConnectLogger(loggers ...types.Logger) {
	if len(loggers) == 0 {
		return
	}

	n := 0
	for _, l := range loggers {
		if l != nil {
			loggers[n] = l
			n++
		}
	}
	if n == 0 {
		return
	}
	loggers = loggers[:n]

	c.loggersLock.Lock()
	c.loggers = append(c.loggers, loggers...)
	c.loggersLock.Unlock()
}

// ConnectMeter sets the meter that counts frames and bytes.
func (c *Codec) ConnectMeter(m types.Meter) {
	c.meter = m
}

// SetTransform pins the wavelet transform. A nil transform restores lookup by name.
func (c *Codec) SetTransform(t types.WaveletTransform) {
	c.transform = t
}

// SetStuffer replaces the byte stuffer. Nil is ignored.
func (c *Codec) SetStuffer(s types.ByteStuffer) {
	if s == nil {
		return
	}
	c.stuffer = s
}

// SetComponentMetadata sets the codec's name and id. An empty id keeps the generated one.
func (c *Codec) SetComponentMetadata(name string, id string) {
	c.metadataLock.Lock()
	defer c.metadataLock.Unlock()
	c.componentMetadata.Name = name
	if id != "" {
		c.componentMetadata.ID = id
	}
}

// GetComponentMetadata returns the codec metadata.
func (c *Codec) GetComponentMetadata() types.ComponentMetadata {
	c.metadataLock.Lock()
	metadata := c.componentMetadata
	c.metadataLock.Unlock()
	return metadata
}

// MaxEncodedLen is the dst size that CompressCoefficients can never overflow for params.
func (c *Codec) MaxEncodedLen(params types.CompressionParams) int {
	return c.stuffer.MaxEncodedLen(BodyLen(int(params.FrameSize), params.QBits))
}
