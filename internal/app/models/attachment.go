package models

import "time"

// Attachment is a file attached to a module. The core stores metadata only;
// raw bytes live behind the file storage collaborator.
type Attachment struct {
	ID         int64     `json:"id" db:"id"`
	ModuleID   int64     `json:"moduleId" db:"module_id"`
	Filename   string    `json:"filename" db:"filename"`
	FilePath   string    `json:"filePath" db:"file_path"`
	FileType   string    `json:"fileType" db:"file_type"`
	FileSize   int64     `json:"fileSize" db:"file_size"`
	UploadedAt time.Time `json:"uploadedAt" db:"uploaded_at"`
}
