package scraper

import (
	"os"
	"sync"
	"time"

	"gopkg.in/yaml.v3"
)

// SelectorConfig holds the CSS selectors for scraping Confluence group
// pages.
type SelectorConfig struct {
	PageTitle        string
	PageBody         string
	CommentContainer string
	CommentBody      string
	CommentAuthor    string
	CommentDate      string
	LikeUser         string

	mu          sync.RWMutex
	lastModTime time.Time
	filePath    string
}

// rawConfig represents the YAML structure.
type rawConfig struct {
	Page struct {
		Title string `yaml:"title"`
		Body  string `yaml:"body"`
	} `yaml:"page"`
	Comment struct {
		Container string `yaml:"container"`
		Body      string `yaml:"body"`
		Author    string `yaml:"author"`
		Date      string `yaml:"date"`
	} `yaml:"comment"`
	Like struct {
		User string `yaml:"user"`
	} `yaml:"like"`
}

// LoadSelectors loads selector configuration from a YAML file.
// It starts a background goroutine for hot-reloading.
func LoadSelectors(filePath string) (*SelectorConfig, error) {
	config := &SelectorConfig{filePath: filePath}
	if err := config.reload(); err != nil {
		return nil, err
	}

	// Start hot-reload watcher
	go config.watch()

	return config, nil
}

// reload reads the configuration from the file.
func (c *SelectorConfig) reload() error {
	data, err := os.ReadFile(c.filePath)
	if err != nil {
		return err
	}

	var raw rawConfig
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.PageTitle = raw.Page.Title
	c.PageBody = raw.Page.Body
	c.CommentContainer = raw.Comment.Container
	c.CommentBody = raw.Comment.Body
	c.CommentAuthor = raw.Comment.Author
	c.CommentDate = raw.Comment.Date
	c.LikeUser = raw.Like.User

	return nil
}

// watch monitors the configuration file for changes and reloads it.
func (c *SelectorConfig) watch() {
	ticker := time.NewTicker(10 * time.Second)
	for range ticker.C {
		info, err := os.Stat(c.filePath)
		if err != nil {
			continue
		}
		if info.ModTime().After(c.lastModTime) {
			_ = c.reload()
			c.lastModTime = info.ModTime()
		}
	}
}

// GetPageTitle returns the page title selector (thread-safe).
func (c *SelectorConfig) GetPageTitle() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.PageTitle
}

// GetCommentContainer returns the comment container selector (thread-safe).
func (c *SelectorConfig) GetCommentContainer() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.CommentContainer
}
