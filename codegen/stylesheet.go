package codegen

// stylesheet 是固定输出的样式表：每种动画一组关键帧与一个 class，
// 每种悬停效果一条 :hover 规则。与卡片是否实际使用无关。
const stylesheet = `/* BentoGrid Animations and Effects */

/* Animations */
@keyframes fadeIn {
  from { opacity: 0; }
  to { opacity: 1; }
}

@keyframes slideUp {
  from { transform: translateY(20px); opacity: 0; }
  to { transform: translateY(0); opacity: 1; }
}

@keyframes slideDown {
  from { transform: translateY(-20px); opacity: 0; }
  to { transform: translateY(0); opacity: 1; }
}

@keyframes slideLeft {
  from { transform: translateX(20px); opacity: 0; }
  to { transform: translateX(0); opacity: 1; }
}

@keyframes slideRight {
  from { transform: translateX(-20px); opacity: 0; }
  to { transform: translateX(0); opacity: 1; }
}

@keyframes scaleUp {
  from { transform: scale(0.8); opacity: 0; }
  to { transform: scale(1); opacity: 1; }
}

@keyframes scaleDown {
  from { transform: scale(1.2); opacity: 0; }
  to { transform: scale(1); opacity: 1; }
}

@keyframes bounce {
  0%, 20%, 50%, 80%, 100% { transform: translateY(0); }
  40% { transform: translateY(-20px); }
  60% { transform: translateY(-10px); }
}

@keyframes pulse {
  0% { transform: scale(1); }
  50% { transform: scale(1.05); }
  100% { transform: scale(1); }
}

@keyframes spin {
  from { transform: rotate(0deg); }
  to { transform: rotate(360deg); }
}

/* Applied Animation Classes */
.bento-fade-in {
  animation: fadeIn 1s forwards;
}

.bento-slide-up {
  animation: slideUp 1s forwards;
}

.bento-slide-down {
  animation: slideDown 1s forwards;
}

.bento-slide-left {
  animation: slideLeft 1s forwards;
}

.bento-slide-right {
  animation: slideRight 1s forwards;
}

.bento-scale-up {
  animation: scaleUp 1s forwards;
}

.bento-scale-down {
  animation: scaleDown 1s forwards;
}

.bento-bounce {
  animation: bounce 1s forwards;
}

.bento-pulse {
  animation: pulse 1s infinite;
}

.bento-spin {
  animation: spin 2s linear infinite;
}

/* Hover Effects */
.bento-hover-scale:hover {
  transform: scale(1.05);
  transition: transform 0.3s ease;
}

.bento-hover-lift:hover {
  transform: translateY(-5px);
  transition: transform 0.3s ease;
}

.bento-hover-glow:hover {
  box-shadow: 0 0 15px rgba(var(--primary-rgb), 0.5);
  transition: box-shadow 0.3s ease;
}

.bento-hover-border-glow:hover {
  box-shadow: inset 0 0 0 2px hsl(var(--primary));
  transition: box-shadow 0.3s ease;
}

.bento-hover-background-shift:hover {
  background-color: hsl(var(--primary) / 0.1);
  transition: background-color 0.3s ease;
}

.bento-hover-text-shift:hover {
  color: hsl(var(--primary));
  transition: color 0.3s ease;
}
`

// Stylesheet returns the fixed stylesheet text.
func Stylesheet() string { return stylesheet }
