package ui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"

	"quick-chat-client/chat"
	"quick-chat-client/llm"
	"quick-chat-client/utils"
)

// ChatView renders the conversation and drives the streaming client
type ChatView struct {
	app   *App
	store *chat.Store

	messagesContainer *fyne.Container
	scroll            *container.Scroll
	input             *widget.Entry
	sendButton        *widget.Button
	stopButton        *widget.Button
	attachButton      *widget.Button
	effortSelect      *widget.Select
	attachmentsBox    *fyne.Container

	pendingImages []llm.ImageAttachment
	titled        atomic.Bool
}

// NewChatView creates the chat view
func NewChatView(app *App) *ChatView {
	cv := &ChatView{
		app:   app,
		store: chat.NewStore(),
	}

	cv.messagesContainer = container.NewVBox()
	cv.scroll = container.NewScroll(cv.messagesContainer)
	cv.attachmentsBox = container.NewHBox()

	cv.input = widget.NewEntry()
	cv.input.SetPlaceHolder("Type a message...")
	cv.input.OnSubmitted = func(string) { cv.sendMessage() }

	cv.sendButton = widget.NewButton("Send", cv.sendMessage)
	cv.sendButton.Importance = widget.HighImportance

	cv.stopButton = widget.NewButton("Stop", cv.stopStreaming)
	cv.stopButton.Disable()

	cv.attachButton = widget.NewButton("Image", cv.attachImage)

	cv.effortSelect = widget.NewSelect(effortOptions(), func(selected string) {
		if err := app.settings.SetReasoningEffort(selected); err != nil {
			app.logger.Error("Failed to save effort setting: %v", err)
		}
	})
	cv.effortSelect.SetSelected(string(llm.ParseEffort(app.settings.ReasoningEffort())))

	return cv
}

// effortOptions returns the selectable effort names
func effortOptions() []string {
	efforts := llm.Efforts()
	options := make([]string, len(efforts))
	for i, e := range efforts {
		options[i] = string(e)
	}
	return options
}

// Build assembles the chat view layout
func (cv *ChatView) Build() fyne.CanvasObject {
	newChatButton := widget.NewButton("New Chat", cv.newChat)
	settingsButton := widget.NewButton("Settings", func() {
		ShowSettingsDialog(cv.app)
	})

	toolbar := container.NewHBox(newChatButton, layout.NewSpacer(), settingsButton)

	inputRow := container.NewBorder(
		nil, nil,
		container.NewHBox(cv.attachButton, cv.effortSelect),
		container.NewHBox(cv.stopButton, cv.sendButton),
		cv.input,
	)

	bottom := container.NewVBox(cv.attachmentsBox, inputRow)

	return container.NewBorder(toolbar, bottom, nil, nil, cv.scroll)
}

// sendMessage appends the user's input and the assistant placeholder, then
// streams the response off the UI thread. Sending while a response is still
// streaming supersedes it; the previous stream resolves silently.
func (cv *ChatView) sendMessage() {
	text := strings.TrimSpace(cv.input.Text)
	images := cv.pendingImages
	if text == "" && len(images) == 0 {
		return
	}

	effort := llm.ParseEffort(cv.effortSelect.Selected)

	cv.input.SetText("")
	cv.pendingImages = nil
	cv.refreshAttachments()

	userMsg := cv.store.AppendUser(text, images)
	cv.messagesContainer.Add(cv.buildUserMessageUI(userMsg))

	// Snapshot before the placeholder so the request carries only real turns
	snapshot := cv.store.Snapshot()

	placeholder := cv.store.AppendAssistantPlaceholder()

	roleLabel := widget.NewLabel("Assistant")
	roleLabel.TextStyle = fyne.TextStyle{Bold: true}

	reasoningLabel := widget.NewLabel("")
	reasoningLabel.TextStyle = fyne.TextStyle{Italic: true}
	reasoningLabel.Wrapping = fyne.TextWrapWord
	reasoningLabel.Hide()

	contentText := widget.NewRichText()
	contentText.Wrapping = fyne.TextWrapBreak
	contentText.ParseMarkdown("*Thinking...*")

	placeholderBox := container.NewVBox(
		roleLabel,
		reasoningLabel,
		container.NewPadded(contentText),
		widget.NewSeparator(),
	)
	cv.messagesContainer.Add(placeholderBox)
	cv.messagesContainer.Refresh()
	cv.scroll.ScrollToBottom()

	cv.setStreaming(true)

	utils.SafeGo(cv.app.logger, "sendMessage streaming", func() {
		err := cv.app.client.Send(snapshot, effort, func(content, reasoning string) {
			cv.store.UpdateAssistant(placeholder.ID, content, reasoning)
			fyne.Do(func() {
				if reasoning != "" {
					reasoningLabel.SetText(reasoning)
					reasoningLabel.Show()
				}
				if content != "" {
					contentText.ParseMarkdown(content)
				}
				cv.scroll.ScrollToBottom()
			})
		})

		if err != nil {
			if errors.Is(err, llm.ErrCanceled) {
				// Superseded or stopped; whatever streamed stays on screen
				return
			}

			cv.app.logger.Error("Chat request failed: %v", err)
			cv.store.Remove(placeholder.ID)
			fyne.Do(func() {
				cv.messagesContainer.Remove(placeholderBox)
				cv.messagesContainer.Refresh()
				cv.setStreaming(false)
				dialog.ShowError(err, cv.app.window)
			})
			return
		}

		fyne.Do(func() {
			cv.setStreaming(false)
		})

		cv.maybeGenerateTitle()
	})
}

// buildUserMessageUI renders a sent user message
func (cv *ChatView) buildUserMessageUI(msg *llm.Message) fyne.CanvasObject {
	roleLabel := widget.NewLabel("You")
	roleLabel.TextStyle = fyne.TextStyle{Bold: true}

	contentLabel := widget.NewLabel(msg.Content)
	contentLabel.Wrapping = fyne.TextWrapWord

	box := container.NewVBox(roleLabel)
	if len(msg.Images) > 0 {
		imagesLabel := widget.NewLabel(fmt.Sprintf("%d image(s) attached", len(msg.Images)))
		imagesLabel.TextStyle = fyne.TextStyle{Italic: true}
		box.Add(imagesLabel)
	}
	if msg.Content != "" {
		box.Add(container.NewPadded(contentLabel))
	}
	box.Add(widget.NewSeparator())

	return box
}

// setStreaming toggles the send/stop controls
func (cv *ChatView) setStreaming(streaming bool) {
	if streaming {
		cv.stopButton.Enable()
	} else {
		cv.stopButton.Disable()
	}
}

// stopStreaming cancels the in-flight request; the stream resolves silently
func (cv *ChatView) stopStreaming() {
	cv.app.client.CancelCurrent()
	cv.setStreaming(false)
}

// newChat cancels any in-flight request and starts an empty conversation
func (cv *ChatView) newChat() {
	cv.app.client.CancelCurrent()
	cv.store.Reset()
	cv.titled.Store(false)
	cv.pendingImages = nil
	cv.refreshAttachments()
	cv.messagesContainer.RemoveAll()
	cv.messagesContainer.Refresh()
	cv.setStreaming(false)
	cv.app.SetConversationTitle("")
}

// attachImage opens a file picker and queues the chosen image for the next
// message
func (cv *ChatView) attachImage() {
	fileDialog := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil {
			dialog.ShowError(err, cv.app.window)
			return
		}
		if reader == nil {
			return
		}
		path := reader.URI().Path()
		reader.Close()

		attachment, err := utils.ProcessImageFile(path)
		if err != nil {
			cv.app.logger.Error("Failed to process image: %v", err)
			dialog.ShowError(err, cv.app.window)
			return
		}

		cv.pendingImages = append(cv.pendingImages, attachment)
		cv.refreshAttachments()
	}, cv.app.window)

	fileDialog.SetFilter(storage.NewExtensionFileFilter([]string{".png", ".jpg", ".jpeg", ".gif"}))
	fileDialog.Show()
}

// refreshAttachments redraws the pending attachment chips above the input
func (cv *ChatView) refreshAttachments() {
	cv.attachmentsBox.RemoveAll()

	for i := range cv.pendingImages {
		index := i
		label := fmt.Sprintf("Image %d ✕", index+1)
		chip := widget.NewButton(label, func() {
			cv.pendingImages = append(cv.pendingImages[:index], cv.pendingImages[index+1:]...)
			cv.refreshAttachments()
		})
		chip.Importance = widget.LowImportance
		cv.attachmentsBox.Add(chip)
	}

	cv.attachmentsBox.Refresh()
}

// maybeGenerateTitle generates a window title once per conversation, after
// the first completed exchange. Failures are logged and otherwise ignored.
func (cv *ChatView) maybeGenerateTitle() {
	if !cv.titled.CompareAndSwap(false, true) {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	title, err := cv.app.titles.GenerateTitle(ctx, cv.store.Snapshot())
	if err != nil {
		cv.app.logger.Warn("Failed to generate title: %v", err)
		return
	}

	fyne.Do(func() {
		cv.app.SetConversationTitle(title)
	})
}
