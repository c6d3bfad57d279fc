package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
)

// ShowSettingsDialog opens the settings form. Values are written to the
// settings database on save; the streaming client reads them fresh on the
// next send, so no restart is needed.
func ShowSettingsDialog(app *App) {
	apiKeyEntry := widget.NewPasswordEntry()
	apiKeyEntry.SetText(app.settings.APIKey())
	apiKeyEntry.SetPlaceHolder("sk-...")

	systemPromptEntry := widget.NewMultiLineEntry()
	systemPromptEntry.SetText(app.settings.SystemPrompt())
	systemPromptEntry.SetPlaceHolder("Optional system prompt")
	systemPromptEntry.SetMinRowsVisible(4)

	items := []*widget.FormItem{
		widget.NewFormItem("API Key", apiKeyEntry),
		widget.NewFormItem("System Prompt", systemPromptEntry),
	}

	form := dialog.NewForm("Settings", "Save", "Cancel", items, func(save bool) {
		if !save {
			return
		}

		if err := app.settings.SetAPIKey(apiKeyEntry.Text); err != nil {
			app.logger.Error("Failed to save API key: %v", err)
			dialog.ShowError(err, app.window)
			return
		}
		if err := app.settings.SetSystemPrompt(systemPromptEntry.Text); err != nil {
			app.logger.Error("Failed to save system prompt: %v", err)
			dialog.ShowError(err, app.window)
			return
		}

		app.logger.Info("Settings saved")
	}, app.window)

	form.Resize(fyne.NewSize(480, 320))
	form.Show()
}
