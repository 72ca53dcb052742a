package styles

// Tip: To find icons use https://github.com/loichyan/nerdfix

var (
	IconGear     = "⚙"
	IconCode     = "\U000F0169"
	IconMarkdown = "\ue73e"
	IconNotebook = "\U000F082E"
	IconWarning  = "\uf071"
)
