package timeline

import (
	"reflect"
	"testing"
)

// TestBuildSequence 测试序列解析和"全部帧"回退
func TestBuildSequence(t *testing.T) {
	ds := &Dataset{
		Frames: make([]Frame, 5),
		Animations: map[string][]int{
			"walk":  {3, 1, 1, 0},
			"empty": {},
		},
		Order: []string{"walk", "empty"},
	}

	// 命中非空动画：原样返回
	if got := BuildSequence(ds, "walk"); !reflect.DeepEqual(got, []int{3, 1, 1, 0}) {
		t.Errorf("BuildSequence(walk) = %v", got)
	}

	// 空动画、不存在的名字、空名字：都回退到恒等序列
	want := []int{0, 1, 2, 3, 4}
	for _, name := range []string{"empty", "no_such", ""} {
		if got := BuildSequence(ds, name); !reflect.DeepEqual(got, want) {
			t.Errorf("BuildSequence(%q) = %v, want %v", name, got, want)
		}
	}

	// nil 数据集
	if got := BuildSequence(nil, "walk"); got != nil {
		t.Errorf("BuildSequence(nil) = %v, want nil", got)
	}

	// 无帧时回退序列为空
	if got := BuildSequence(&Dataset{}, "x"); len(got) != 0 {
		t.Errorf("无帧数据集: got %v, want 空序列", got)
	}
}

// TestPickInitialAnimation 测试初始动画的优先级链
func TestPickInitialAnimation(t *testing.T) {
	ds := &Dataset{
		Animations: map[string][]int{"idle": {0}, "walk": {1}},
		Order:      []string{"idle", "walk"},
		Autoplay:   "walk",
	}

	tests := []struct {
		name      string
		ds        *Dataset
		requested string
		autoplay  string
		want      string
	}{
		{"显式请求优先", ds, "jump", "run", "jump"},
		{"其次调用方自动播放", ds, "", "run", "run"},
		{"再次数据集自动播放", ds, "", "", "walk"},
		{"声明顺序第一个", &Dataset{Animations: map[string][]int{"idle": {0}}, Order: []string{"idle"}}, "", "", "idle"},
		{"无动画返回空", &Dataset{}, "", "", ""},
		{"nil 数据集", nil, "", "", ""},
		{"nil 数据集但有请求", nil, "jump", "", "jump"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PickInitialAnimation(tt.ds, tt.requested, tt.autoplay); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}
