// Package ui implements the desktop chat window on top of Fyne. It owns
// the conversation state and renders the streaming client's output; all
// mutation of UI-owned state happens on the Fyne event loop via fyne.Do.
package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"

	"quick-chat-client/db"
	"quick-chat-client/llm"
	"quick-chat-client/utils"
)

const defaultWindowTitle = "Quick Chat"

// App represents the main application
type App struct {
	fyneApp    fyne.App
	window     fyne.Window
	config     *utils.Config
	configPath string
	logger     *utils.Logger
	settings   *db.SettingsStore
	client     *llm.Client
	titles     *llm.TitleGenerator

	chatView *ChatView
}

// NewApp creates a new application instance
func NewApp(config *utils.Config, configPath string, settings *db.SettingsStore, logger *utils.Logger) *App {
	fyneApp := app.NewWithID("quick-chat-client")
	window := fyneApp.NewWindow(defaultWindowTitle)

	window.Resize(fyne.NewSize(
		float32(config.UI.WindowWidth),
		float32(config.UI.WindowHeight),
	))

	application := &App{
		fyneApp:    fyneApp,
		window:     window,
		config:     config,
		configPath: configPath,
		logger:     logger,
		settings:   settings,
		client:     llm.NewClient(settings, config.Endpoint.BaseURL, config.Endpoint.Model),
		titles:     llm.NewTitleGenerator(settings, config.Endpoint.BaseURL, config.Endpoint.Model),
	}

	// Persist window geometry on close
	window.SetOnClosed(func() {
		size := window.Canvas().Size()
		application.config.UI.WindowWidth = int(size.Width)
		application.config.UI.WindowHeight = int(size.Height)
		if err := utils.SaveConfig(application.configPath, application.config); err != nil {
			application.logger.Error("Failed to save window size: %v", err)
		}
	})

	application.applyThemeFromConfig()
	application.buildUI()

	return application
}

// applyThemeFromConfig applies the configured font size and theme variant
func (a *App) applyThemeFromConfig() {
	fontSize := a.config.UI.FontSize
	if fontSize <= 0 {
		fontSize = 14
	}
	a.fyneApp.Settings().SetTheme(newCustomTheme(fontSize, a.config.UI.DarkTheme))
}

// buildUI assembles the window content
func (a *App) buildUI() {
	a.chatView = NewChatView(a)
	a.window.SetContent(a.chatView.Build())
}

// SetConversationTitle updates the window title from a generated
// conversation title. Must be called on the UI thread.
func (a *App) SetConversationTitle(title string) {
	if title == "" {
		a.window.SetTitle(defaultWindowTitle)
		return
	}
	a.window.SetTitle(title + " — " + defaultWindowTitle)
}

// Run shows the window and enters the event loop
func (a *App) Run() {
	a.window.ShowAndRun()
}

// Cleanup cancels any in-flight request before shutdown
func (a *App) Cleanup() {
	a.client.CancelCurrent()
}
