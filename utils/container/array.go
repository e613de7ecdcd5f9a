package container

// IIncrementalItem 支持增量更新的元素接口
// 功能：定义支持增量更新的元素必须实现的方法
// 说明：用于增量数组中元素的索引管理，确保元素能够正确跟踪自己在数组中的位置
type IIncrementalItem interface {
	Index() int         // 获取元素的索引
	SetIndex(index int) // 设置元素的索引
}

// IncrementalItemBase 增量元素基类
// 功能：提供增量元素的基础实现，包含索引管理功能
// 说明：可以作为其他结构体的嵌入字段，快速实现IIncrementalItem接口
type IncrementalItemBase struct {
	index int // 元素在数组中的索引，-1表示不在数组中
}

// Index 获取元素的索引
func (b *IncrementalItemBase) Index() int {
	return b.index
}

// SetIndex 设置元素的索引
func (b *IncrementalItemBase) SetIndex(index int) {
	b.index = index
}

// IncrementalArray 增量数组，连续存储并支持按索引O(1)删除
// 功能：遍历期间登记的增删操作延迟到Prepare时统一执行，删除采用与末尾元素交换后弹出的方式
// 说明：非线程安全，归属于单个仿真实例；删除会改变元素顺序
type IncrementalArray[T IIncrementalItem] struct {
	data   []T // 主数据数组
	add    []T // 待添加的元素列表
	remove []T // 待删除的元素列表
}

// NewIncrementalArray 创建增量数组
func NewIncrementalArray[T IIncrementalItem]() *IncrementalArray[T] {
	return &IncrementalArray[T]{
		data:   make([]T, 0),
		add:    make([]T, 0),
		remove: make([]T, 0),
	}
}

// Len 获取当前数组长度
func (a *IncrementalArray[T]) Len() int {
	return len(a.data)
}

// Data 获取原始数据
// 功能：返回主数据数组（不拷贝），调用方不得修改切片结构
// 说明：返回的是当前已应用所有增量操作的数据
func (a *IncrementalArray[T]) Data() []T {
	return a.data
}

// Add 增加元素（等到Prepare时才会真正增加）
func (a *IncrementalArray[T]) Add(value T) {
	a.add = append(a.add, value)
}

// Remove 删除元素（等到Prepare时才会真正删除）
func (a *IncrementalArray[T]) Remove(value T) {
	a.remove = append(a.remove, value)
}

// Prepare 执行增量操作
// 功能：统一执行所有待处理的删除和添加操作
// 算法说明：
// 1. 逐个删除：将被删元素与末尾元素交换，更新被换入元素的索引后弹出末尾
// 2. 被删元素索引置为-1，重复登记的删除会被跳过
// 3. 待添加元素追加到末尾并设置索引
// 4. 清空待处理列表
func (a *IncrementalArray[T]) Prepare() {
	for _, x := range a.remove {
		ind := x.Index()
		if ind < 0 || ind >= len(a.data) {
			continue
		}
		last := len(a.data) - 1
		a.data[ind] = a.data[last]
		a.data[ind].SetIndex(ind)
		var zero T
		a.data[last] = zero
		a.data = a.data[:last]
		x.SetIndex(-1)
	}
	for _, x := range a.add {
		x.SetIndex(len(a.data))
		a.data = append(a.data, x)
	}
	a.add = a.add[:0]
	a.remove = a.remove[:0]
}

// Clear 清空数组与所有待处理操作
func (a *IncrementalArray[T]) Clear() {
	for _, x := range a.data {
		x.SetIndex(-1)
	}
	clear(a.data)
	a.data = a.data[:0]
	a.add = a.add[:0]
	a.remove = a.remove[:0]
}
