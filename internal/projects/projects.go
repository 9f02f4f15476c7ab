// Package projects 记录在哪些工作目录下使用过 origami，以及对应账本所在的数据目录。
package projects

import (
	"encoding/json"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"time"

	"github.com/SandeepBatta/OrigamiAI/internal/config"
)

const projectsFileName = "projects.json"

// Project 是一个用过 origami 的工作目录
type Project struct {
	Path         string    `json:"path"`
	DataDir      string    `json:"data_dir"`
	LastAccessed time.Time `json:"last_accessed"`
}

// ProjectList 按最近访问倒序保存项目
type ProjectList struct {
	Projects []Project `json:"projects"`
}

var mu sync.Mutex

// 与全局数据配置放在同一目录
func projectsFilePath() string {
	return filepath.Join(filepath.Dir(config.GlobalConfigData()), projectsFileName)
}

// Load 读取项目列表，文件不存在时返回空列表。
func Load() (*ProjectList, error) {
	mu.Lock()
	defer mu.Unlock()
	return load()
}

func load() (*ProjectList, error) {
	data, err := os.ReadFile(projectsFilePath())
	if os.IsNotExist(err) {
		return &ProjectList{Projects: []Project{}}, nil
	}
	if err != nil {
		return nil, err
	}
	list := &ProjectList{Projects: []Project{}}
	if len(data) == 0 {
		return list, nil
	}
	if err := json.Unmarshal(data, list); err != nil {
		return nil, err
	}
	return list, nil
}

func save(list *ProjectList) error {
	path := projectsFilePath()
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return err
	}
	data, err := json.MarshalIndent(list, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}

// Register 记录 workingDir 及其账本目录，已存在时更新数据目录和访问时间。
func Register(workingDir, dataDir string) error {
	mu.Lock()
	defer mu.Unlock()

	list, err := load()
	if err != nil {
		return err
	}

	list.Projects = slices.DeleteFunc(list.Projects, func(p Project) bool {
		return p.Path == workingDir
	})
	// 刚访问的项目放在最前，时间相同时保持这个顺序
	list.Projects = slices.Insert(list.Projects, 0, Project{
		Path:         workingDir,
		DataDir:      dataDir,
		LastAccessed: time.Now().UTC(),
	})
	slices.SortStableFunc(list.Projects, func(a, b Project) int {
		return b.LastAccessed.Compare(a.LastAccessed)
	})
	return save(list)
}

// List 返回按最近访问倒序排列的项目。
func List() ([]Project, error) {
	list, err := Load()
	if err != nil {
		return nil, err
	}
	return list.Projects, nil
}
