package server

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/ludo-technologies/codesim/domain"
)

// CompareRequest is the JSON body of POST /api/v1/compare
type CompareRequest struct {
	Code1     string   `json:"code1"`
	Code2     string   `json:"code2"`
	Name1     string   `json:"name1"`
	Name2     string   `json:"name2"`
	Language  string   `json:"language"`
	Threshold *float64 `json:"threshold"`
}

// LanguageInfo describes one supported language
type LanguageInfo struct {
	Language   domain.Language `json:"language"`
	Extensions []string        `json:"extensions"`
	Keywords   int             `json:"keywords"`
}

// Health reports liveness
func (s *Server) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Languages lists the registered languages
func (s *Server) Languages(c *gin.Context) {
	var out []LanguageInfo
	for _, lang := range s.registry.Languages() {
		spec, err := s.registry.Lookup(lang)
		if err != nil {
			continue
		}
		out = append(out, LanguageInfo{
			Language:   lang,
			Extensions: spec.Extensions(),
			Keywords:   len(spec.Keywords()),
		})
	}
	c.JSON(http.StatusOK, gin.H{"languages": out})
}

// Compare compares two inline snippets
func (s *Server) Compare(c *gin.Context) {
	var body CompareRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		s.fail(c, domain.NewInvalidInputError("invalid JSON body", err))
		return
	}

	req, err := s.newRequest(body.Language, body.Threshold)
	if err != nil {
		s.fail(c, err)
		return
	}
	req.First = domain.SourceUnit{Name: nameOr(body.Name1, "code1"), Text: body.Code1}
	req.Second = domain.SourceUnit{Name: nameOr(body.Name2, "code2"), Text: body.Code2}

	resp, err := s.service.Compare(c.Request.Context(), req)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// CompareUpload compares two multipart inputs. Each side is taken from zipN,
// then fileN, then the inline codeN field.
func (s *Server) CompareUpload(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, int64(s.options.MaxUploadMB)<<20)
	if err := c.Request.ParseMultipartForm(int64(s.options.MaxUploadMB) << 20); err != nil {
		var maxBytes *http.MaxBytesError
		if errors.As(err, &maxBytes) {
			s.fail(c, domain.NewInputTooLargeError("upload", maxBytes.Limit+1, maxBytes.Limit))
			return
		}
		s.fail(c, domain.NewInvalidInputError("invalid multipart form", err))
		return
	}

	var threshold *float64
	if raw := c.PostForm("threshold"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			s.fail(c, domain.NewInvalidInputError(fmt.Sprintf("invalid threshold %q", raw), err))
			return
		}
		threshold = &v
	}

	req, err := s.newRequest(c.PostForm("language"), threshold)
	if err != nil {
		s.fail(c, err)
		return
	}

	first, err := s.uploadedUnit(c, "1", req.Language)
	if err != nil {
		s.fail(c, err)
		return
	}
	second, err := s.uploadedUnit(c, "2", req.Language)
	if err != nil {
		s.fail(c, err)
		return
	}
	req.First = first
	req.Second = second

	format := domain.OutputFormatJSON
	if c.PostForm("format") == string(domain.OutputFormatHTML) || c.Query("format") == string(domain.OutputFormatHTML) {
		format = domain.OutputFormatHTML
	}
	req.OutputFormat = format

	resp, err := s.service.Compare(c.Request.Context(), req)
	if err != nil {
		s.fail(c, err)
		return
	}

	if format != domain.OutputFormatHTML {
		c.JSON(http.StatusOK, resp)
		return
	}

	var buf bytes.Buffer
	if err := s.formatter.FormatCompare(resp, domain.OutputFormatHTML, &buf); err != nil {
		s.fail(c, err)
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", buf.Bytes())
}

func (s *Server) newRequest(language string, threshold *float64) (*domain.CompareRequest, error) {
	req := domain.DefaultCompareRequest()
	req.Threshold = s.options.Threshold
	req.MaxInputBytes = s.options.MaxInputBytes
	if threshold != nil {
		req.Threshold = *threshold
	}
	if language != "" {
		lang, err := domain.ParseLanguage(language)
		if err != nil {
			return nil, err
		}
		req.Language = lang
	}
	return req, nil
}

// uploadedUnit reads one side of an upload with zip > file > inline precedence
func (s *Server) uploadedUnit(c *gin.Context, side string, language domain.Language) (domain.SourceUnit, error) {
	if header, err := c.FormFile("zip" + side); err == nil {
		name := header.Filename
		if filepath.Ext(name) != ".zip" {
			name += ".zip"
		}
		return s.readUpload(header, name, language)
	}
	if header, err := c.FormFile("file" + side); err == nil {
		return s.readUpload(header, header.Filename, language)
	}
	if code, ok := c.GetPostForm("code" + side); ok {
		return domain.SourceUnit{Name: "code" + side, Text: code, Language: language}, nil
	}
	return domain.SourceUnit{}, domain.NewInvalidInputError(
		fmt.Sprintf("missing input %s: send zip%s, file%s or code%s", side, side, side, side), nil)
}

func (s *Server) readUpload(header *multipart.FileHeader, name string, language domain.Language) (domain.SourceUnit, error) {
	f, err := header.Open()
	if err != nil {
		return domain.SourceUnit{}, domain.NewInvalidInputError(fmt.Sprintf("cannot open upload %s", header.Filename), err)
	}
	defer f.Close()

	content, err := io.ReadAll(f)
	if err != nil {
		return domain.SourceUnit{}, domain.NewInvalidInputError(fmt.Sprintf("cannot read upload %s", header.Filename), err)
	}
	return s.reader.UnitFromBytes(name, content, language)
}

func nameOr(name, fallback string) string {
	if name == "" {
		return fallback
	}
	return name
}
