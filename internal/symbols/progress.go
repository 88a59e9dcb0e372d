package symbols

// ProgressReporter provides callbacks for reporting symbol scan progress.
type ProgressReporter interface {
	// OnParseStart is called before the program files are parsed.
	OnParseStart(totalFiles int)

	// OnFileParsed is called after each file is parsed.
	OnFileParsed(path string)

	// OnParseComplete is called once every file is parsed.
	OnParseComplete()
}

// NoOpProgressReporter is a progress reporter that does nothing.
type NoOpProgressReporter struct{}

func (n *NoOpProgressReporter) OnParseStart(totalFiles int) {}
func (n *NoOpProgressReporter) OnFileParsed(path string)    {}
func (n *NoOpProgressReporter) OnParseComplete()            {}
