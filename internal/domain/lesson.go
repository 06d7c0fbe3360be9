package domain

import (
	"encoding/json"
)

// LessonContent is the fully generated material for one lesson, kept as the
// model returned it.
type LessonContent map[string]any

func (l LessonContent) Title() string { return str(l, "title") }

func (l LessonContent) Objectives() []string { return strs(l, "objectives") }

// EstimatedMinutes reports false when the field is absent or not a number.
func (l LessonContent) EstimatedMinutes() (float64, bool) { return num(l, "estimatedMinutes") }

// Content returns the object entries of "content" as blocks. The blocks share
// storage with the lesson.
func (l LessonContent) Content() []ContentBlock {
	objs := objects(l, "content")
	out := make([]ContentBlock, len(objs))
	for i, o := range objs {
		out[i] = ContentBlock(o)
	}
	return out
}

type BlockType string

const (
	BlockHeading   BlockType = "heading"
	BlockParagraph BlockType = "paragraph"
	BlockCode      BlockType = "code"
	BlockList      BlockType = "list"
	BlockVideo     BlockType = "video"
	BlockMCQ       BlockType = "mcq"
	BlockImage     BlockType = "image"
)

// BlockTypes lists the accepted content block types in their canonical order.
var BlockTypes = []BlockType{
	BlockHeading, BlockParagraph, BlockCode, BlockList, BlockVideo, BlockMCQ, BlockImage,
}

func (t BlockType) Valid() bool {
	for _, v := range BlockTypes {
		if t == v {
			return true
		}
	}
	return false
}

// ContentBlock is one typed unit of lesson content. It stays an open JSON
// object so variant fields the model emits pass through unchanged; the typed
// views below read them without validating.
type ContentBlock map[string]any

func (b ContentBlock) Type() BlockType {
	s, _ := b["type"].(string)
	return BlockType(s)
}

type HeadingBlock struct {
	Text  string `json:"text"`
	Level int    `json:"level"`
}

type ParagraphBlock struct {
	Text string `json:"text"`
}

type CodeBlock struct {
	Language string `json:"language"`
	Text     string `json:"text"`
	Title    string `json:"title,omitempty"`
}

type ListBlock struct {
	Style string   `json:"style"`
	Items []string `json:"items"`
	Title string   `json:"title,omitempty"`
}

type VideoBlock struct {
	Query    string `json:"query,omitempty"`
	VideoID  string `json:"videoId,omitempty"`
	VideoURL string `json:"videoUrl,omitempty"`
	Title    string `json:"title,omitempty"`
}

type MCQBlock struct {
	Question    string   `json:"question"`
	Options     []string `json:"options"`
	Answer      int      `json:"answer"`
	Explanation string   `json:"explanation"`
}

type ImageBlock struct {
	Src     string `json:"src"`
	Alt     string `json:"alt,omitempty"`
	Caption string `json:"caption,omitempty"`
	Title   string `json:"title,omitempty"`
}

func (b ContentBlock) Heading() (HeadingBlock, bool) {
	var v HeadingBlock
	ok := b.view(BlockHeading, &v)
	return v, ok
}

func (b ContentBlock) Paragraph() (ParagraphBlock, bool) {
	var v ParagraphBlock
	ok := b.view(BlockParagraph, &v)
	return v, ok
}

func (b ContentBlock) Code() (CodeBlock, bool) {
	var v CodeBlock
	ok := b.view(BlockCode, &v)
	return v, ok
}

func (b ContentBlock) List() (ListBlock, bool) {
	var v ListBlock
	ok := b.view(BlockList, &v)
	return v, ok
}

func (b ContentBlock) Video() (VideoBlock, bool) {
	var v VideoBlock
	ok := b.view(BlockVideo, &v)
	return v, ok
}

func (b ContentBlock) MCQ() (MCQBlock, bool) {
	var v MCQBlock
	ok := b.view(BlockMCQ, &v)
	return v, ok
}

func (b ContentBlock) Image() (ImageBlock, bool) {
	var v ImageBlock
	ok := b.view(BlockImage, &v)
	return v, ok
}

// view decodes the block into out. Fields whose JSON type does not match are
// left zero (encoding/json skips them and keeps going); it reports false only
// when the block type differs.
func (b ContentBlock) view(want BlockType, out any) bool {
	if b.Type() != want {
		return false
	}
	if raw, err := json.Marshal(b); err == nil {
		_ = json.Unmarshal(raw, out)
	}
	return true
}
