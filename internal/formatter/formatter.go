// package formatter provides functions to export the song catalog to various formats (JSON, CSV, plain text)
package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/desertthunder/crate/internal/models"
	"github.com/desertthunder/crate/internal/shared"
)

// jsonSong is the export shape for one song: names only, no surrogate ids.
type jsonSong struct {
	Title  string `json:"title"`
	URL    string `json:"url"`
	Artist string `json:"artist"`
	Genre  string `json:"genre"`
}

// jsonExport wraps the song list under a "songs" key.
type jsonExport struct {
	Songs []jsonSong `json:"songs"`
}

// ExportToJSON converts a song listing to the JSON export shape
// {"songs": [{"title", "url", "artist", "genre"}]}
func ExportToJSON(songs []*models.Song, pretty bool) ([]byte, error) {
	export := jsonExport{Songs: make([]jsonSong, 0, len(songs))}
	for _, song := range songs {
		export.Songs = append(export.Songs, jsonSong{
			Title:  song.Title,
			URL:    song.URL,
			Artist: song.Artist,
			Genre:  song.Genre,
		})
	}

	data, err := shared.MarshalJSON(export, pretty)
	if err != nil {
		return nil, fmt.Errorf("failed to generate JSON: %w", err)
	}
	return data, nil
}

// ExportToCSV converts a song listing to CSV format with columns: ID, Title, Artist, Genre, URL
func ExportToCSV(songs []*models.Song) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"ID", "Title", "Artist", "Genre", "URL"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, song := range songs {
		record := []string{
			strconv.FormatInt(song.ID, 10),
			song.Title,
			song.Artist,
			song.Genre,
			song.URL,
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// ExportToText converts a song listing to plain text format
func ExportToText(songs []*models.Song) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("Songs: %d\n\n", len(songs)))
	for i, song := range songs {
		buf.WriteString(fmt.Sprintf("%d. %s - %s [%s]\n", i+1, song.Artist, song.Title, song.Genre))
	}

	return buf.Bytes(), nil
}

// WriteJSONExport exports the catalog to a JSON file.
//
// Defaults to catalog.json as the filename.
func WriteJSONExport(songs []*models.Song, filepath string) (string, error) {
	if filepath == "" {
		filepath = "catalog.json"
	}

	data, err := ExportToJSON(songs, true)
	if err != nil {
		return "", err
	}

	if err := os.WriteFile(filepath, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write JSON file: %w", err)
	}

	return filepath, nil
}

// WriteCSVExport exports the catalog to a CSV file.
//
// Defaults to catalog.csv as the filename.
func WriteCSVExport(songs []*models.Song, filepath string) (string, error) {
	if filepath == "" {
		filepath = "catalog.csv"
	}

	data, err := ExportToCSV(songs)
	if err != nil {
		return "", err
	}

	if err := os.WriteFile(filepath, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write CSV file: %w", err)
	}

	return filepath, nil
}

// WriteTextExport exports the catalog to a plain text file.
//
// Defaults to catalog.txt as the filename.
func WriteTextExport(songs []*models.Song, filepath string) (string, error) {
	if filepath == "" {
		filepath = "catalog.txt"
	}

	data, err := ExportToText(songs)
	if err != nil {
		return "", err
	}

	if err := os.WriteFile(filepath, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write text file: %w", err)
	}

	return filepath, nil
}
