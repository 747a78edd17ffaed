package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/kgingest/internal/core/domain"
)

var documentCmd = &cobra.Command{
	Use:   "document",
	Short: "Manage registered documents",
	Long:  `List, view, or delete documents registered by ingestion.`,
}

var documentListCmd = &cobra.Command{
	Use:   "list",
	Short: "List registered documents",
	Args:  cobra.NoArgs,
	RunE:  runDocumentList,
}

var documentGetCmd = &cobra.Command{
	Use:   "get [doc-id]",
	Short: "Show document info",
	Args:  cobra.ExactArgs(1),
	RunE:  runDocumentGet,
}

var documentContentCmd = &cobra.Command{
	Use:   "content [doc-id]",
	Short: "Print document content",
	Args:  cobra.ExactArgs(1),
	RunE:  runDocumentContent,
}

var documentEntitiesCmd = &cobra.Command{
	Use:   "entities [doc-id]",
	Short: "List extracted entities",
	Args:  cobra.ExactArgs(1),
	RunE:  runDocumentEntities,
}

var documentDeleteCmd = &cobra.Command{
	Use:   "delete [doc-id]",
	Short: "Delete a document",
	Args:  cobra.ExactArgs(1),
	RunE:  runDocumentDelete,
}

func init() {
	documentCmd.AddCommand(documentListCmd)
	documentCmd.AddCommand(documentGetCmd)
	documentCmd.AddCommand(documentContentCmd)
	documentCmd.AddCommand(documentEntitiesCmd)
	documentCmd.AddCommand(documentDeleteCmd)
	rootCmd.AddCommand(documentCmd)
}

// documentSummary is one row of the list output.
type documentSummary struct {
	ID         string        `json:"id" yaml:"id"`
	Name       string        `json:"name" yaml:"name"`
	Type       string        `json:"type" yaml:"type"`
	Status     domain.Status `json:"status" yaml:"status"`
	Size       int64         `json:"size" yaml:"size"`
	URL        string        `json:"url,omitempty" yaml:"url,omitempty"`
	Entities   int           `json:"entities" yaml:"entities"`
	UploadedAt string        `json:"uploadedAt" yaml:"uploadedAt"`
}

const timeLayout = "2006-01-02 15:04:05"

func runDocumentList(cmd *cobra.Command, _ []string) error {
	if documentService == nil {
		return errors.New("document service not configured")
	}

	docs, err := documentService.List(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to list documents: %w", err)
	}

	rows := make([]documentSummary, 0, len(docs))
	for i := range docs {
		rows = append(rows, documentSummary{
			ID:         docs[i].ID,
			Name:       docs[i].Name,
			Type:       docs[i].Type,
			Status:     docs[i].Status,
			Size:       docs[i].Size,
			URL:        docs[i].URL,
			Entities:   len(docs[i].Entities),
			UploadedAt: docs[i].UploadedAt.Format(timeLayout),
		})
	}

	return render(cmd, rows, func() {
		if len(rows) == 0 {
			cmd.Println("No documents found.")
			return
		}
		cmd.Println("Documents:")
		cmd.Println()
		for _, r := range rows {
			cmd.Printf("  %s\n", r.ID)
			cmd.Printf("    Name:   %s\n", r.Name)
			cmd.Printf("    Type:   %s\n", r.Type)
			cmd.Printf("    Status: %s\n", r.Status)
			if r.URL != "" {
				cmd.Printf("    URL:    %s\n", r.URL)
			}
			cmd.Println()
		}
		cmd.Printf("Total: %d documents\n", len(rows))
	})
}

func runDocumentGet(cmd *cobra.Command, args []string) error {
	if documentService == nil {
		return errors.New("document service not configured")
	}

	doc, err := documentService.Get(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("failed to get document: %w", err)
	}

	return render(cmd, doc, func() {
		cmd.Printf("Document: %s\n\n", doc.ID)
		cmd.Printf("  Name:      %s\n", doc.Name)
		cmd.Printf("  Type:      %s\n", doc.Type)
		cmd.Printf("  Size:      %d bytes\n", doc.Size)
		cmd.Printf("  Status:    %s\n", doc.Status)
		if doc.URL != "" {
			cmd.Printf("  URL:       %s\n", doc.URL)
		}
		cmd.Printf("  Uploaded:  %s\n", doc.UploadedAt.Format(timeLayout))
		cmd.Printf("  Entities:  %d\n", len(doc.Entities))
	})
}

func runDocumentContent(cmd *cobra.Command, args []string) error {
	if documentService == nil {
		return errors.New("document service not configured")
	}

	content, err := documentService.GetContent(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("failed to get document content: %w", err)
	}

	cmd.Println(content)
	return nil
}

func runDocumentEntities(cmd *cobra.Command, args []string) error {
	if documentService == nil {
		return errors.New("document service not configured")
	}

	doc, err := documentService.Get(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("failed to get document: %w", err)
	}

	entities := doc.Entities
	if entities == nil {
		entities = []domain.Entity{}
	}

	return render(cmd, entities, func() {
		if len(entities) == 0 {
			cmd.Printf("No entities extracted from %s.\n", doc.ID)
			return
		}
		for _, e := range entities {
			cmd.Printf("%s\t%s\n", e.Type, e.Name)
		}
	})
}

func runDocumentDelete(cmd *cobra.Command, args []string) error {
	if documentService == nil {
		return errors.New("document service not configured")
	}

	if err := documentService.Delete(cmd.Context(), args[0]); err != nil {
		return fmt.Errorf("failed to delete document: %w", err)
	}

	cmd.Printf("Document %s deleted.\n", args[0])
	return nil
}
