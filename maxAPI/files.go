package maxAPI

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/max-messenger/max-bot-api-client-go/schemes"

	"smartschool/assistant"
	"smartschool/services"
)

const fileNotFoundMsg = "No encontré un archivo adjunto. Envía el CSV como archivo."

func (b *Bot) beginStudentsUpload(ctx context.Context, userID int64) {
	sess, ok := b.sessionFor(userID)
	if !ok || !sess.IsAdmin() {
		b.sendMessage(ctx, userID, permissionMsg)
		return
	}

	b.setPending(userID, pendingStudentsFile)
	b.sendMessage(ctx, userID, sendStudentsCSV)
}

func (b *Bot) handleAttachments(ctx context.Context, userID int64, attachments []interface{}) {
	if b.pendingFor(userID) != pendingStudentsFile {
		b.logger.Warnf("No pending upload for user %d", userID)
		return
	}

	sess, ok := b.sessionFor(userID)
	if !ok || !sess.IsAdmin() {
		b.setPending(userID, pendingNone)
		b.sendMessage(ctx, userID, permissionMsg)
		return
	}

	fileAttachments := extractFileAttachments(attachments)
	if len(fileAttachments) == 0 {
		b.sendMessage(ctx, userID, fileNotFoundMsg)
		return
	}

	b.setPending(userID, pendingNone)

	filePath, err := b.downloadFile(ctx, fileAttachments[0])
	if err != nil {
		b.logger.Errorf("Failed to download file %s: %v", fileAttachments[0].Filename, err)
		b.sendMessage(ctx, userID, fmt.Sprintf(importErrMsg, err.Error()))
		return
	}
	defer os.Remove(filePath)

	importer := services.NewStudentImporter(b.engine, b.logger)
	count, err := importer.ImportFile(ctx, filePath)
	if err != nil {
		b.sendMessage(ctx, userID, fmt.Sprintf(importErrMsg, err.Error()))
		return
	}

	b.sendMessage(ctx, userID, fmt.Sprintf(importDoneMsg, count))
	b.showSection(ctx, userID, assistant.NavManageStudents)
}

func extractFileAttachments(attachments []interface{}) []*schemes.FileAttachment {
	fileAttachments := []*schemes.FileAttachment{}
	for _, att := range attachments {
		if fileAtt, ok := att.(*schemes.FileAttachment); ok {
			fileAttachments = append(fileAttachments, fileAtt)
		}
	}
	return fileAttachments
}

func (b *Bot) downloadFile(ctx context.Context, fileAtt *schemes.FileAttachment) (string, error) {
	fileURL := fileAtt.Payload.Url
	b.logger.Debugf("Downloading file: %s from %s", fileAtt.Filename, fileURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fileURL, nil)
	if err != nil {
		return "", err
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("failed to download file: status %s", resp.Status)
	}

	tmpDir := "./tmp"
	if err := os.MkdirAll(tmpDir, 0755); err != nil {
		return "", err
	}

	filePath := filepath.Join(tmpDir, fileAtt.Filename)
	out, err := os.Create(filePath)
	if err != nil {
		return "", err
	}
	defer out.Close()

	if _, err := io.Copy(out, resp.Body); err != nil {
		return "", err
	}

	b.logger.Infof("File saved to: %s", filePath)
	return filePath, nil
}
