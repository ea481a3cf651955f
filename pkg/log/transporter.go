package log

// Transporter is a log output destination: stdout, a file, a collector.
type Transporter interface {
	// Name identifies the transporter in failure messages.
	Name() string

	// Write delivers one entry to the destination.
	Write(entry Entry) error

	// Close releases any resources. Write must not be called afterwards.
	Close() error
}
