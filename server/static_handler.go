package server

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"musicapp/logger"
	"musicapp/storage"

	"github.com/gorilla/mux"
)

// StaticHandler 处理 /static/audio 下的音频文件请求
type StaticHandler struct {
	store storage.AudioStore
}

// NewStaticHandler 创建 StaticHandler 实例
func NewStaticHandler(store storage.AudioStore) *StaticHandler {
	return &StaticHandler{store: store}
}

// ServeHTTP 实现 http.Handler 接口
func (h *StaticHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]

	object, info, err := h.store.Open(r.Context(), name)
	if errors.Is(err, storage.ErrObjectNotFound) {
		http.Error(w, "File not found", http.StatusNotFound)
		return
	}
	if err != nil {
		logger.Error("Error opening audio file", logger.String("name", name), logger.ErrorField(err))
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	defer object.Close()

	w.Header().Set("Content-Type", info.ContentType)
	w.Header().Set("Cache-Control", "public, max-age=86400")

	// 支持 Range 请求，便于浏览器拖动进度条
	if rs, ok := object.(io.ReadSeeker); ok {
		http.ServeContent(w, r, info.Name, time.Time{}, rs)
		return
	}

	w.Header().Set("Content-Length", strconv.FormatInt(info.Size, 10))
	if r.Method == http.MethodHead {
		return
	}
	if _, err := io.Copy(w, object); err != nil {
		logger.Error("Error serving audio file", logger.String("name", name), logger.ErrorField(err))
	}
}
